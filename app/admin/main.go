// Файл: app/admin/main.go
//
// Консольная админ-панель: вход по токену, список заявок, смена статуса,
// удаление, выгрузка в Excel и полный экспорт/импорт.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"print3d-service/internal/dto"
	"print3d-service/internal/export"
	"print3d-service/internal/i18n"
	"print3d-service/internal/printclient"
	"print3d-service/pkg/constants"
	applogger "print3d-service/pkg/logger"
)

const usage = `Использование: admin [глобальные флаги] <команда> [флаги]

Команды:
  login   -token T                    войти и сохранить токен
  logout                              удалить сохранённый токен
  list    [-status S] [-email E]      список заявок
  status  -id N -to S                 сменить статус заявки
  delete  -id N [-yes]                удалить заявку
  export  -out F.xlsx [-status S] [-email E]
  bundle  -out F.json                 полный экспорт
  import  -in F.json                  импорт портфолио и клиентов
  hash    -token T [-cost N]          bcrypt-хеш для ADMIN_TOKEN_HASH
`

func main() {
	global := flag.NewFlagSet("admin", flag.ExitOnError)
	apiURL := global.String("api", envOr("PRINT3D_API_URL", "http://localhost:8080"), "адрес сервера")
	lang := global.String("lang", string(i18n.DefaultLanguage), "язык сообщений: ru, en, zh")
	tokenFile := global.String("token-file", "", "файл токена (по умолчанию ~/.print3d/admin_token)")
	logLevel := global.String("log-level", "error", "уровень логирования")
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	_ = global.Parse(os.Args[1:])

	if global.NArg() == 0 {
		global.Usage()
		os.Exit(2)
	}
	cmd, args := global.Arg(0), global.Args()[1:]

	if cmd == "hash" {
		exitOn(runHash(args))
		return
	}

	language, err := i18n.ParseLanguage(*lang)
	exitOn(err)

	path := *tokenFile
	if path == "" {
		path, err = printclient.DefaultTokenPath()
		exitOn(err)
	}

	logger := applogger.NewLogger(*logLevel, "")
	defer logger.Sync()

	client, err := printclient.New(printclient.Options{BaseURL: *apiURL, Language: language, Logger: logger})
	exitOn(err)

	app := &adminApp{
		client:  client,
		session: printclient.NewAdminSession(client, printclient.NewFileTokenStore(path)),
		logger:  logger,
	}
	app.session.OnSessionEnded(func() {
		fmt.Fprintln(os.Stderr, client.T(i18n.KeyAdminSessionEnded))
	})

	ctx := context.Background()
	exitOn(app.run(ctx, cmd, args))
}

type adminApp struct {
	client  *printclient.Client
	session *printclient.AdminSession
	logger  *zap.Logger
}

func (a *adminApp) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		token := fs.String("token", "", "токен администратора")
		_ = fs.Parse(args)
		if err := a.session.Login(ctx, *token); err != nil {
			return a.describe(err)
		}
		if err := a.session.LastError(); err != nil {
			fmt.Fprintln(os.Stderr, a.describe(err))
		}
		printOrders(a.session.Orders())
		return nil

	case "logout":
		return a.session.Logout()

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		status := fs.String("status", constants.StatusAll, "статус или all")
		email := fs.String("email", "", "подстрока email")
		_ = fs.Parse(args)
		if err := a.restore(ctx); err != nil {
			return err
		}
		printOrders(a.session.Filtered(*status, *email))
		return nil

	case "status":
		fs := flag.NewFlagSet("status", flag.ExitOnError)
		id := fs.Uint64("id", 0, "номер заявки")
		to := fs.String("to", "", "новый статус: new, processing, completed, cancelled")
		_ = fs.Parse(args)
		if err := a.restore(ctx); err != nil {
			return err
		}
		if err := a.session.UpdateStatus(ctx, *id, *to); err != nil {
			return a.describe(err)
		}
		fmt.Println(a.client.T(i18n.KeyAdminStatusUpdated, *id, a.client.T(i18n.StatusKey(*to))))
		return nil

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		id := fs.Uint64("id", 0, "номер заявки")
		yes := fs.Bool("yes", false, "не спрашивать подтверждение")
		_ = fs.Parse(args)
		if err := a.restore(ctx); err != nil {
			return err
		}
		confirm := printclient.Confirmer(promptConfirmer{})
		if *yes {
			confirm = printclient.ConfirmFunc(func(string) bool { return true })
		}
		if err := a.session.DeleteOrder(ctx, *id, confirm); err != nil {
			return a.describe(err)
		}
		fmt.Println(a.client.T(i18n.KeyAdminDeleted, *id))
		return nil

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		out := fs.String("out", export.SpreadsheetFileName(time.Now()), "файл xlsx")
		status := fs.String("status", constants.StatusAll, "статус или all")
		email := fs.String("email", "", "подстрока email")
		_ = fs.Parse(args)
		if err := a.restore(ctx); err != nil {
			return err
		}
		return writeFile(*out, func(f *os.File) error {
			return printclient.ExportToSpreadsheet(f, a.session.Filtered(*status, *email))
		})

	case "bundle":
		fs := flag.NewFlagSet("bundle", flag.ExitOnError)
		out := fs.String("out", export.BundleFileName(time.Now()), "файл json")
		_ = fs.Parse(args)
		if err := a.restore(ctx); err != nil {
			return err
		}
		return writeFile(*out, func(f *os.File) error {
			return a.session.ExportBundle(ctx, f, time.Now())
		})

	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		in := fs.String("in", "", "файл json полного экспорта")
		_ = fs.Parse(args)
		if err := a.restore(ctx); err != nil {
			return err
		}
		f, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer f.Close()
		res, err := a.session.ImportBundle(ctx, f)
		fmt.Println(a.client.T(i18n.KeyAdminImportDone, res.Succeeded, res.Failed))
		if err != nil {
			return a.describe(err)
		}
		return nil
	}

	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("неизвестная команда %q", cmd)
}

func (a *adminApp) restore(ctx context.Context) error {
	if err := a.session.Restore(ctx); err != nil {
		return a.describe(err)
	}
	if err := a.session.LastError(); err != nil {
		return a.describe(err)
	}
	return nil
}

// describe переводит ошибку сессии в сообщение для оператора.
func (a *adminApp) describe(err error) error {
	var serverErr *printclient.ServerError
	switch {
	case errors.Is(err, printclient.ErrUnauthorized):
		return errors.New(a.client.T(i18n.KeyAdminLoginFailed))
	case errors.Is(err, printclient.ErrNetwork):
		return errors.New(a.client.T(i18n.KeyAdminNetworkError))
	case errors.As(err, &serverErr):
		return errors.New(a.client.T(i18n.KeyAdminServerError, serverErr.StatusCode))
	}
	return err
}

type promptConfirmer struct{}

func (promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes" || answer == "д" || answer == "да"
}

func printOrders(orders []dto.OrderDTO) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tНОМЕР\tСТАТУС\tEMAIL\tМАТЕРИАЛ\tКОЛ-ВО\tСОЗДАНА")
	for _, o := range orders {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			o.ID, o.OrderNumber, constants.StatusLabels[o.Status], o.Email, o.PlasticType, o.Quantity,
			o.CreatedAt.Local().Format("02.01.2006 15:04"))
	}
	_ = w.Flush()
}

func runHash(args []string) error {
	fs := flag.NewFlagSet("hash", flag.ExitOnError)
	token := fs.String("token", "", "токен администратора")
	cost := fs.Int("cost", bcrypt.DefaultCost, "стоимость bcrypt")
	_ = fs.Parse(args)
	if *token == "" {
		return errors.New("укажите -token")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(*token), *cost)
	if err != nil {
		return fmt.Errorf("ошибка при генерации хеша: %w", err)
	}
	fmt.Println(string(hashed))
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
