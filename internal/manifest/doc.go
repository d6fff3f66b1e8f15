// Package manifest loads and validates memora manifest files. A manifest
// declares where the build artifact cache lives and which artifacts it holds,
// together with the files each artifact depends on (inputs) and produces
// (outputs).
//
// # Manifest Format
//
// Manifests are YAML documents (JSON works too, as a YAML subset). Files with a
// .toml extension are read as TOML:
//
//	cache_root_dir: .cache
//	disable_env_var: MEMORA_DISABLE
//	artifacts:
//	  build:
//	    inputs: [src/main.c, Makefile]
//	    outputs: [out/bin]
//	  docs:
//	    inputs: [docs/]
//	    outputs: [out/html]
//
// Artifacts keep the order in which they are declared, and their names must be
// unique within a manifest. An empty cache_root_dir ("") is rejected like a
// missing one.
//
// # Usage
//
//	m, err := manifest.Load("Memora.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, a := range m.Artifacts {
//	    // a.Inputs ends with "Memora.yml"
//	}
//
// The path of the manifest is appended to the inputs of every artifact, so
// editing the manifest invalidates everything cached from it.
//
// # Error Handling
//
// Every load failure is a *LoadError carrying the manifest path. Its class is
// selected with errors.Is:
//   - ErrRead: the file could not be opened or read
//   - ErrSyntax: the content does not decode into a valid manifest
//
// The underlying cause stays in the chain, e.g. ErrMissingField,
// ErrDuplicateArtifact or a *yaml.TypeError.
package manifest
