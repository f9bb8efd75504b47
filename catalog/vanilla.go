package catalog

import (
	"fmt"
	"os"

	"github.com/fastbreeding/breedpatch/glob"

	"github.com/goccy/go-yaml"
)

// Animal is a built-in creature: the entity files defining it, where its
// patches go and the setting scaling it.
type Animal struct {
	Input  []string `yaml:"input"`
	Output string   `yaml:"output"`
	Key    string   `yaml:"key"`

	inputs  glob.Set
	targets glob.Set
}

// MatchInput reports whether rel, a path relative to the game's entities
// directory, is one of a's files.
func (a *Animal) MatchInput(rel string) bool {
	return a.inputs.Match(glob.Split(rel))
}

// Vanilla is the table of built-in animals.
type Vanilla struct {
	Animals []*Animal
}

// GameDomain qualifies identifiers of built-in content.
const GameDomain = "game"

func NewVanilla(animals []*Animal) (*Vanilla, error) {
	for _, a := range animals {
		if a.Key == "" || a.Output == "" || len(a.Input) == 0 {
			return nil, fmt.Errorf("animal %v: input, output and key are required", a.Input)
		}
		inputs, err := glob.CompileSet(a.Input...)
		if err != nil {
			return nil, err
		}
		a.inputs = inputs
		a.targets = make(glob.Set, 0, len(a.Input))
		for _, in := range a.Input {
			p, err := glob.Compile(GameDomain + ":entities/" + in)
			if err != nil {
				return nil, err
			}
			a.targets = append(a.targets, p)
		}
	}
	return &Vanilla{Animals: animals}, nil
}

func DefaultVanilla() *Vanilla {
	v, err := NewVanilla([]*Animal{
		{Input: []string{"land/pig-wild-*.json"}, Output: "land/pig-wild.json", Key: "PIG_CYCLE"},
		{Input: []string{"land/hooved/goat.json"}, Output: "land/hooved/goat.json", Key: "GOAT_CYCLE"},
		{Input: []string{"land/sheep-bighorn-*.json"}, Output: "land/sheep-bighorn.json", Key: "SHEEP_CYCLE"},
		{Input: []string{"land/chicken-*.json"}, Output: "land/chicken.json", Key: "CHICKEN_CYCLE"},
		{Input: []string{"land/hare-*.json"}, Output: "land/hare.json", Key: "HARE_CYCLE"},
	})
	if err != nil {
		panic(err)
	}
	return v
}

// LoadVanilla reads a table written as a list of {input, output, key}.
func LoadVanilla(path string) (*Vanilla, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vanilla table: %w", err)
	}
	var animals []*Animal
	if err := yaml.Unmarshal(d, &animals); err != nil {
		return nil, fmt.Errorf("failed to parse vanilla table %s: %w", path, err)
	}
	return NewVanilla(animals)
}

// Find returns the animal a domain-qualified target such as
// "game:entities/land/pig-wild-male.json" belongs to.
func (v *Vanilla) Find(target string) (*Animal, bool) {
	segs := glob.Split(target)
	for _, a := range v.Animals {
		if a.targets.Match(segs) {
			return a, true
		}
	}
	return nil, false
}
