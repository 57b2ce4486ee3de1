// Файл: app/order/main.go
//
// Отправка заявки на печать из командной строки: поля формы передаются флагами.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"print3d-service/internal/i18n"
	"print3d-service/internal/printclient"
	"print3d-service/pkg/constants"
	applogger "print3d-service/pkg/logger"
)

// formFields - флаги, совпадающие с именами полей формы.
var formFields = []struct {
	name, def, usage string
}{
	{"length", "", "длина, мм"},
	{"width", "", "ширина, мм"},
	{"height", "", "высота, мм"},
	{"plastic", "", "пластик: pla, abs, petg, nylon, resin, tpu"},
	{"color", "", "цвет"},
	{"infill", "20", "заполнение, % (10-100)"},
	{"quantity", "1", "количество"},
	{"customerType", constants.CustomerIndividual, "individual или legal"},
	{"companyName", "", "название компании (для юрлица)"},
	{"inn", "", "ИНН (для юрлица)"},
	{"email", "", "email для связи"},
	{"phone", "", "телефон"},
	{"description", "", "комментарий к заявке"},
}

func main() {
	apiURL := flag.String("api", envOr("PRINT3D_API_URL", "http://localhost:8080"), "адрес сервера")
	lang := flag.String("lang", string(i18n.DefaultLanguage), "язык сообщений: ru, en, zh")
	filePath := flag.String("file", "", "файл модели (stl, step, stp, dwg, obj, 3mf)")
	logLevel := flag.String("log-level", "error", "уровень логирования")

	values := make(map[string]*string, len(formFields))
	for _, f := range formFields {
		values[f.name] = flag.String(f.name, f.def, f.usage)
	}
	flag.Parse()

	language, err := i18n.ParseLanguage(*lang)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := applogger.NewLogger(*logLevel, "")
	defer logger.Sync()

	client, err := printclient.New(printclient.Options{BaseURL: *apiURL, Language: language, Logger: logger})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	form := url.Values{}
	for name, v := range values {
		form.Set(name, *v)
	}

	var file *printclient.FileInput
	if *filePath != "" {
		f, err := os.Open(*filePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		file = &printclient.FileInput{Name: filepath.Base(*filePath), Reader: f}
	}

	feedback := printclient.NewOrderForm(client).SubmitForm(context.Background(), form, file)
	if !feedback.Success {
		fmt.Fprintln(os.Stderr, feedback.Message)
		os.Exit(1)
	}
	fmt.Println(feedback.Message)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
