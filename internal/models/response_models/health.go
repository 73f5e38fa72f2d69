package response_models

type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}
