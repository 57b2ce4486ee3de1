// pkg/constants/constants.go
package constants

//============== UPLOAD CONTEXTS ==============

// UploadContext определяет тип для контекстов загрузки файлов.
type UploadContext string

const (
	UploadContextOrderAttachment UploadContext = "order_attachment"
	UploadContextPortfolioImage  UploadContext = "portfolio_image"
	UploadContextClientLogo      UploadContext = "client_logo"
)

func (uc UploadContext) String() string {
	return string(uc)
}

//============== CUSTOMERS ==============

const (
	CustomerIndividual = "individual"
	CustomerLegal      = "legal"
)

var CustomerTypeLabels = map[string]string{
	CustomerIndividual: "Физ. лицо",
	CustomerLegal:      "Юр. лицо",
}

//============== CATALOG ==============

// Plastics - коды материалов из каталога.
var Plastics = []string{"pla", "abs", "petg", "nylon", "resin", "tpu"}

// Colors - предустановленные цвета; кроме них допускается произвольный текст.
var Colors = []string{"white", "black", "red", "blue", "green", "yellow", "orange", "purple", "gray", "transparent", "custom"}

// Границы размеров и количества совпадают с колонками orders: NUMERIC(10,2) и INTEGER.
const (
	MinDimensionMM = 0.01
	MaxDimensionMM = 99999999.99
	MaxQuantity    = 2147483647
)

// Technologies - технологии печати для калькулятора.
var Technologies = []string{"fdm", "sla", "dlp"}

//============== HEADERS ==============

const HeaderAdminToken = "X-Admin-Token"
