package identityservice

import "strings"

// Provider модель мастера из IdentityService
type Provider struct {
	ID               int64  `json:"id"`
	DisplayName      string `json:"display_name"`
	IsActiveProvider bool   `json:"is_active_provider"`
}

// Customer модель клиента из IdentityService
type Customer struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
}

// DisplayName возвращает имя клиента для снимка в бронировании.
// Пустая строка означает, что профиль не заполнен — fallback выбирает вызывающий
func (c *Customer) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
