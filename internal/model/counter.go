package model

import "context"

//go:generate go tool mockgen -source=counter.go -destination=mock/counter.go -package=mock

// KinematicsCounter sums the events of all kinematics files of a job.
type KinematicsCounter interface {
	Count(ctx context.Context) (KinematicsResult, error)
}

// AODCounter sums the MC collisions stored in an AO2D file. An error means
// the file could not be read at all.
type AODCounter interface {
	Count(ctx context.Context) (AODResult, error)
}
