// Package breedpatch compiles balance patches for creature definitions.
//
// A Compiler reads a mod through a source.Reader, finds every tunable
// breeding field of its entity files (growth time, pregnancy length,
// multiply cooldowns, drop quantities) and produces
//
//   - a list of replace Patches in a stable order, each halving its field,
//   - a configuration Fragment holding, for each patch, the formula that
//     re-derives the value from the creature's cycle setting,
//   - Overrides: copies of the mod's own "add" patch documents with the same
//     scaling applied to the content they insert,
//   - Candidates: add patches that seem to introduce breeding for a built-in
//     creature that is not in the vanilla table.
//
// Which mods and built-in animals are known is decided by a Registry, built
// once per run and passed to the Compiler.
package breedpatch
