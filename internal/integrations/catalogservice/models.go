package catalogservice

// Quote расчет стоимости и длительности уборки из CatalogService
type Quote struct {
	ServiceID       int64   `json:"service_id"`
	ServiceName     string  `json:"service_name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// quoteRequest тело запроса расчета
type quoteRequest struct {
	ServiceID    int64   `json:"service_id"`
	ExtraIDs     []int64 `json:"extra_ids,omitempty"`
	SquareMeters float64 `json:"square_meters,omitempty"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
