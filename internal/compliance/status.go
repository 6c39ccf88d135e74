package compliance

import (
	"math"

	"riskboard/internal/models"
)

// UnknownFramework — имя-заглушка в ответе, когда фреймворк не найден.
const UnknownFramework = "unknown"

// Store — чтение фреймворка со всей цепочкой покрытия.
type Store interface {
	// FrameworkWithCoverage загружает фреймворк с требованиями, их контролями
	// и оценками этих контролей на активах. (nil, nil), если фреймворка нет.
	FrameworkWithCoverage(frameworkID uint) (*models.Framework, error)
}

type RequirementStatus struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	IsFulfilled   bool   `json:"isFulfilled"`
	ControlsCount int    `json:"controlsCount"`
}

type Status struct {
	FrameworkName string              `json:"frameworkName"`
	Percentage    int                 `json:"percentage"`
	Requirements  []RequirementStatus `json:"requirementStatus"`
}

// GetStatus считает покрытие фреймворка. Требование выполнено, если хотя бы
// один его контроль имеет хотя бы одну оценку со зрелостью не ниже defined —
// на любом активе. Ничего не пишет в БД.
func GetStatus(store Store, frameworkID uint) (*Status, error) {
	fw, err := store.FrameworkWithCoverage(frameworkID)
	if err != nil {
		return nil, err
	}
	if fw == nil {
		return &Status{
			FrameworkName: UnknownFramework,
			Percentage:    0,
			Requirements:  []RequirementStatus{},
		}, nil
	}

	fulfilled := 0
	statuses := make([]RequirementStatus, 0, len(fw.Requirements))

	for _, req := range fw.Requirements {
		ok := requirementFulfilled(req)
		if ok {
			fulfilled++
		}
		statuses = append(statuses, RequirementStatus{
			Code:          req.Code,
			Description:   req.Description,
			IsFulfilled:   ok,
			ControlsCount: len(req.Controls), // контролей, не оценок
		})
	}

	percentage := 0
	if len(fw.Requirements) > 0 {
		percentage = int(math.Round(float64(fulfilled) / float64(len(fw.Requirements)) * 100))
	}

	return &Status{
		FrameworkName: fw.Name,
		Percentage:    percentage,
		Requirements:  statuses,
	}, nil
}

func requirementFulfilled(req models.Requirement) bool {
	for _, ctrl := range req.Controls {
		for _, ev := range ctrl.Evaluations {
			if ev.Maturity.Rank() >= models.MaturityDefined.Rank() {
				return true
			}
		}
	}
	return false
}
