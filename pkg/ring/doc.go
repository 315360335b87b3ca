// Package ring defines the data exchanged between the ringforge front end
// and its backend: ring requests, preview meshes and generation results.
// JSON field names are part of the backend call contract.
package ring
