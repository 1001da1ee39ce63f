package catalogservice

// Service модель услуги из CatalogService
type Service struct {
	ID              int64   `json:"id"`
	ProviderID      int64   `json:"provider_id"`
	BusinessID      *int64  `json:"business_id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
