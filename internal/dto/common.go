package dto

// IDRequestDTO - тело PUT/DELETE запросов, где запись адресуется полем id.
type IDRequestDTO struct {
	ID uint64 `json:"id" validate:"required"`
}

type MutationResultDTO struct {
	Success bool   `json:"success"`
	ID      uint64 `json:"id,omitempty"`
}

type UploadResultDTO struct {
	URL string `json:"url"`
}
