// Package kinematics provides closed-form solutions for the classical
// constant-acceleration scenarios explored by motionlab:
//
//   - [FreeFall]: velocity and distance after falling from rest
//   - [LinearMotion]: position under uniform velocity
//   - [Projectile]: apex height and range of a launch from the ground
//   - [Trajectory]: lazily sampled projectile path
//
// Every function is pure and total over its input domain. Range limits for
// the interactive controls are exported as constants and applied with [Clamp]
// by the caller; the functions themselves never validate.
//
// # Example
//
//	v, d := kinematics.FreeFall(1.0) // 9.81, 4.905
//	res := kinematics.Projectile(20, 30)
//	for p := range kinematics.Trajectory(20, 30) {
//	    _ = p.X
//	}
package kinematics
