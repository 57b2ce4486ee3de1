package dto

type EstimateRequestDTO struct {
	Length     float64 `json:"length" validate:"required,gte=0.01,lte=99999999.99"`
	Width      float64 `json:"width" validate:"required,gte=0.01,lte=99999999.99"`
	Height     float64 `json:"height" validate:"required,gte=0.01,lte=99999999.99"`
	Plastic    string  `json:"plastic" validate:"required,plastic"`
	Technology string  `json:"technology,omitempty" validate:"technology"`
	Infill     int     `json:"infill" validate:"required,min=10,max=100"`
	Quantity   int     `json:"quantity" validate:"required,min=1,max=2147483647"`
}

// EstimateDTO - суммы передаются строками, чтобы не терять копейки на float.
type EstimateDTO struct {
	Price     string `json:"price"`
	Currency  string `json:"currency"`
	VolumeCM3 string `json:"volume_cm3"`
}
