package update_working_hours

import (
	"github.com/barberhub/booking-service/internal/service/schedule/models"
)

// UpdateWorkingHoursRequest HTTP request model: полная замена недели,
// ровно 7 правил
type UpdateWorkingHoursRequest struct {
	Rules []RuleInput `json:"rules"`
}

// RuleInput рабочие часы одного дня недели
type RuleInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = понедельник ... 6 = воскресенье
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
	IsWorking bool   `json:"isWorking"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateWorkingHoursRequest) ToServiceRequest(providerID, requesterID int64) *models.ReplaceWeekRequest {
	rules := make([]models.RuleInput, 0, len(r.Rules))
	for _, rule := range r.Rules {
		rules = append(rules, models.RuleInput{
			DayOfWeek: rule.DayOfWeek,
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
			IsWorking: rule.IsWorking,
		})
	}

	return &models.ReplaceWeekRequest{
		RequesterID: requesterID,
		ProviderID:  providerID,
		Rules:       rules,
	}
}
