package costfunction

import "github.com/lintang-b-s/freightx/pkg"

type EdgeAttributes interface {
	GetLength() float64
	GetCongestion() float64
	GetAQI() float64
	IsRestricted() bool
	GetEdgeId() string
}

type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
	GetObjective() pkg.Objective
}
