package seeders

type portfolioSeed struct {
	Title        string
	Description  string
	ImageURL     string
	DisplayOrder int
}

type clientSeed struct {
	Name         string
	LogoURL      string
	DisplayOrder int
}

var portfolioData = []portfolioSeed{
	{Title: "Корпус для электроники", Description: "PETG, заполнение 40%, матовая поверхность", ImageURL: "/uploads/portfolio/demo-enclosure.jpg", DisplayOrder: 1},
	{Title: "Шестерни редуктора", Description: "Нейлон, серия из 50 штук", ImageURL: "/uploads/portfolio/demo-gears.jpg", DisplayOrder: 2},
	{Title: "Архитектурный макет", Description: "PLA, масштаб 1:200, ручная постобработка", ImageURL: "/uploads/portfolio/demo-architecture.jpg", DisplayOrder: 3},
	{Title: "Гибкие уплотнители", Description: "TPU, твёрдость 95A", ImageURL: "/uploads/portfolio/demo-seals.jpg", DisplayOrder: 4},
	{Title: "Ювелирный мастер-модель", Description: "Фотополимер, слой 0.025 мм", ImageURL: "/uploads/portfolio/demo-jewelry.jpg", DisplayOrder: 5},
}

var clientsData = []clientSeed{
	{Name: "ТехноПром", LogoURL: "/uploads/clients/demo-technoprom.png", DisplayOrder: 1},
	{Name: "Архитектурное бюро «Линия»", LogoURL: "/uploads/clients/demo-liniya.png", DisplayOrder: 2},
	{Name: "RoboLab", LogoURL: "/uploads/clients/demo-robolab.png", DisplayOrder: 3},
}
