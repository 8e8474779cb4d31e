package usecase

import "github.com/xavierca1/ligue-prospector/internal/entity"

type FetchLeadsOutput struct {
	Leads []entity.Lead `json:"leads"`
	Count int           `json:"count"`
	Demo  bool          `json:"demo"`
}

type SavedLeadsOutput struct {
	Leads []entity.Lead `json:"leads"`
	Count int           `json:"count"`
}

type SendOutreachInput struct {
	ZipCode string `json:"zip_code"`
}

type SendResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type SendOutreachOutput struct {
	Sent    int          `json:"sent"`
	Total   int          `json:"total"`
	Results []SendResult `json:"results"`
	Demo    bool         `json:"demo"`
}
