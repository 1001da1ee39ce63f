package models

import (
	"github.com/barberhub/booking-service/internal/domain"
	"github.com/barberhub/booking-service/pkg/types"
)

// Request модели

// RuleInput описывает рабочие часы одного дня недели в запросе
type RuleInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = понедельник ... 6 = воскресенье
	StartTime string `json:"startTime"` // "HH:MM", игнорируется при isWorking=false
	EndTime   string `json:"endTime"`   // "HH:MM", игнорируется при isWorking=false
	IsWorking bool   `json:"isWorking"`
}

// ReplaceWeekRequest запрос на полную замену недельного расписания мастера
type ReplaceWeekRequest struct {
	RequesterID int64       `json:"requesterId"`
	ProviderID  int64       `json:"providerId"`
	Rules       []RuleInput `json:"rules"`
}

// ToDomainRules конвертирует входные правила в domain модели
func (r *ReplaceWeekRequest) ToDomainRules() []*domain.WorkingHoursRule {
	rules := make([]*domain.WorkingHoursRule, 0, len(r.Rules))
	for _, in := range r.Rules {
		rules = append(rules, &domain.WorkingHoursRule{
			ProviderID: r.ProviderID,
			DayOfWeek:  domain.Weekday(in.DayOfWeek),
			StartTime:  types.TimeString(in.StartTime),
			EndTime:    types.TimeString(in.EndTime),
			IsWorking:  in.IsWorking,
		})
	}
	return rules
}

// Response модели

// RuleResponse рабочие часы одного дня недели
type RuleResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsWorking bool   `json:"isWorking"`
}

// WeekResponse недельное расписание мастера
type WeekResponse struct {
	ProviderID int64          `json:"providerId"`
	Rules      []RuleResponse `json:"rules"`
}

// FromDomainWeek конвертирует список domain правил в DTO
func FromDomainWeek(providerID int64, rules []*domain.WorkingHoursRule) *WeekResponse {
	resp := &WeekResponse{
		ProviderID: providerID,
		Rules:      make([]RuleResponse, 0, len(rules)),
	}

	for _, rule := range rules {
		resp.Rules = append(resp.Rules, RuleResponse{
			DayOfWeek: int(rule.DayOfWeek),
			StartTime: rule.StartTime.String(),
			EndTime:   rule.EndTime.String(),
			IsWorking: rule.IsWorking,
		})
	}

	return resp
}
