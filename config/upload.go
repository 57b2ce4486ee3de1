package config

// MaxOrderAttachmentBytes - потолок исходного файла заявки. base64 раздувает его
// примерно в 4/3 раза, и тело запроса остаётся меньше 10 MB лимита шлюза.
const MaxOrderAttachmentBytes int64 = 7 * 1024 * 1024

type UploadConfig struct {
	AllowedMimeTypes  []string
	AllowedExtensions []string
	MaxSizeBytes      int64
	PathPrefix        string
}

var UploadContexts = map[string]UploadConfig{
	"order_attachment": {
		AllowedExtensions: []string{".stl", ".step", ".stp", ".dwg", ".obj", ".3mf"},
		MaxSizeBytes:      MaxOrderAttachmentBytes,
		PathPrefix:        "orders",
	},
	"portfolio_image": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		MaxSizeBytes:     5 * 1024 * 1024,
		PathPrefix:       "portfolio",
	},
	"client_logo": {
		AllowedMimeTypes: []string{"image/png", "image/jpeg", "image/webp"},
		MaxSizeBytes:     5 * 1024 * 1024,
		PathPrefix:       "clients",
	},
}
