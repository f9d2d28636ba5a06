package api

import "encoding/json"

type HealthReport struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type ServiceStatus struct {
	Name         string   `json:"name"`
	Status       string   `json:"status"`
	ResponseTime *float64 `json:"response_time,omitempty"`
	LastCheck    string   `json:"last_check,omitempty"`
}

type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type PanelPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type PanelConfig struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position PanelPosition  `json:"position"`
	Config   map[string]any `json:"config"`
}

type Workspace struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Panels    []PanelConfig `json:"panels"`
	CreatedAt string        `json:"created_at,omitempty"`
	UpdatedAt string        `json:"updated_at,omitempty"`
}

type Dataset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	DatasetID string          `json:"dataset_id,omitempty"`
	Category  string          `json:"category,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

type ProductCategory struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type CompletenessPoint struct {
	Date         string  `json:"date"`
	Completeness float64 `json:"completeness"`
}

type DistributionSlice struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
