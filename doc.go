// Package hailstorm finds the single rock ray that, thrown from an integer
// position with an integer velocity, collides with every hailstone of a
// storm.
//
// 🚀 How does it work?
//
//	For a fixed rock velocity v the unknowns (start s, collision times tᵢ)
//	satisfy a linear system:  s + tᵢ·(v − vᵢ) = pᵢ  for every hailstone i.
//	hailstorm enumerates integer velocities, solves the system for a random
//	sample of hailstones by least squares and accepts the first velocity
//	whose solution verifies within tolerance and rounds to one integer
//	start.
//
// ✨ Packages
//
//	ray/      - Vector3 and Ray values, the "px, py, pz @ vx, vy, vz" parser,
//	            exact XY-plane crossing counts
//	velocity/ - candidate cursors: cube shells around the origin, boxes,
//	            budget (Limit) and worker sharing (Stride)
//	matrix/   - Dense matrices, Jacobi eigen, minimum-norm least squares
//	search/   - system builder, verifier, exact refinement, the sequential
//	            search loop and its parallel race
//	config/   - YAML run configuration
//	logging/  - zap logger for the binary
//
// The command lives in cmd/hailstorm:
//
//	go install github.com/katalvlaran/hailstorm/cmd/hailstorm@latest
//	hailstorm solve input.txt 1
package hailstorm
