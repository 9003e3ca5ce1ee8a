package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/fieldkeeper/internal/client/auth"
	"github.com/iudanet/fieldkeeper/internal/client/data"
	"github.com/iudanet/fieldkeeper/internal/client/iocli"
	"github.com/iudanet/fieldkeeper/internal/client/netmon"
	"github.com/iudanet/fieldkeeper/internal/client/offline"
	"github.com/iudanet/fieldkeeper/internal/client/snapshot"
	"github.com/iudanet/fieldkeeper/internal/client/sync"
	"github.com/iudanet/fieldkeeper/internal/models"
)

//go:generate moq -out outbox_mock.go . Outbox
//go:generate moq -out connectivity_mock.go . Connectivity
//go:generate moq -out watcher_mock.go . Watcher

const (
	// EnvPassword переопределяет пароль учетной записи
	EnvPassword = "FIELDKEEPER_PASSWORD"
	// EnvBackupPassphrase переопределяет пароль зашифрованного экспорта
	EnvBackupPassphrase = "FIELDKEEPER_BACKUP_PASSPHRASE"
)

// ErrUsage is returned for unknown commands and malformed arguments.
var ErrUsage = errors.New("invalid usage")

// Outbox is the part of the offline service the commands use.
type Outbox interface {
	List(filter ...models.Status) []models.Action
	Remove(ctx context.Context, id string) bool
	PendingCount() int
	RecordOnlineStatus(online bool)
	SyncData(ctx context.Context) sync.DrainResult
	Session() sync.Session
	ClearAll(ctx context.Context) error
	ApproximateSize(ctx context.Context) (int64, error)
	ExportSnapshot(ctx context.Context) (*snapshot.Document, error)
	ImportSnapshot(ctx context.Context, doc *snapshot.Document) error
}

var _ Outbox = (*offline.Service)(nil)

// Connectivity answers a one-off "are we online" question.
type Connectivity interface {
	Check(ctx context.Context) netmon.State
}

var _ Connectivity = (*netmon.ProbeProvider)(nil)

// Watcher keeps the process running with a live network monitor until ctx is done.
type Watcher interface {
	Watch(ctx context.Context) error
}

// Secrets are the non-interactive password sources given on the command line.
type Secrets struct {
	FromFile string
	FromArgs string
}

// Deps holds the services a Cli dispatches to.
type Deps struct {
	IO           iocli.IO
	Auth         auth.Service
	Data         data.Service
	Outbox       Outbox
	Connectivity Connectivity
	Watcher      Watcher
	Secrets      Secrets
}

// Cli executes one client command.
type Cli struct {
	io           iocli.IO
	authService  auth.Service
	dataService  data.Service
	outbox       Outbox
	connectivity Connectivity
	watcher      Watcher
	secrets      Secrets
	getenv       func(string) string
}

// New creates a Cli over deps.
func New(deps Deps) *Cli {
	return &Cli{
		io:           deps.IO,
		authService:  deps.Auth,
		dataService:  deps.Data,
		outbox:       deps.Outbox,
		connectivity: deps.Connectivity,
		watcher:      deps.Watcher,
		secrets:      deps.Secrets,
		getenv:       os.Getenv,
	}
}

// Run dispatches args[0] to its command.
func (c *Cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.PrintUsage()
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	command, rest := args[0], args[1:]
	switch command {
	case "register":
		return c.runRegister(ctx, rest)
	case "login":
		return c.runLogin(ctx, rest)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "report":
		return c.runReport(ctx, rest)
	case "staff":
		return c.runStaff(ctx, rest)
	case "resync":
		return c.runResync(ctx, rest)
	case "queue":
		return c.runQueue(ctx, rest)
	case "sync":
		return c.runSync(ctx)
	case "watch":
		return c.runWatch(ctx)
	case "export":
		return c.runExport(ctx, rest)
	case "import":
		return c.runImport(ctx, rest)
	case "clear":
		return c.runClear(ctx, rest)
	case "size":
		return c.runSize(ctx)
	case "help":
		c.PrintUsage()
		return nil
	default:
		c.PrintUsage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

// getPassword retrieves the account password with priority:
// 1. Environment variable FIELDKEEPER_PASSWORD
// 2. File given by --password-file
// 3. Command-line parameter --password
// 4. Interactive prompt (fallback)
func (c *Cli) getPassword(prompt string, confirm bool) (string, error) {
	if envPassword := c.getenv(EnvPassword); envPassword != "" {
		return envPassword, nil
	}

	if c.secrets.FromFile != "" {
		content, err := os.ReadFile(c.secrets.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	if c.secrets.FromArgs != "" {
		return c.secrets.FromArgs, nil
	}

	return c.promptSecret(prompt, confirm)
}

// getPassphrase возвращает пароль зашифрованного экспорта
func (c *Cli) getPassphrase(confirm bool) (string, error) {
	if env := c.getenv(EnvBackupPassphrase); env != "" {
		return env, nil
	}
	return c.promptSecret("Backup passphrase: ", confirm)
}

func (c *Cli) promptSecret(prompt string, confirm bool) (string, error) {
	secret, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if secret == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	if confirm {
		again, err := c.io.ReadPassword("Confirm: ")
		if err != nil {
			return "", fmt.Errorf("failed to read confirmation: %w", err)
		}
		if again != secret {
			return "", fmt.Errorf("passwords do not match")
		}
	}
	return secret, nil
}

// newFlagSet создает FlagSet подкоманды, ошибки печатаются в IO
func (c *Cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.io)
	return fs
}

// parseFlags разбирает флаги подкоманды и возвращает позиционные аргументы
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUsage, fs.Name(), err)
	}
	return fs.Args(), nil
}

// PrintUsage prints the command reference.
func (c *Cli) PrintUsage() {
	c.io.Println(usageText)
}

const usageText = `FieldKeeper Client

Usage:
  fieldkeeper [OPTIONS] COMMAND [ARGS]

Options:
  --version                 Show version information
  --config PATH             YAML config file
  --server URL              Server URL (default: http://localhost:8080)
  --db PATH                 Path to local database (default: fieldkeeper.db)
  --password PASSWORD       Account password (not recommended, use env var or file)
  --password-file PATH      Path to file containing the account password
  --log-level LEVEL         debug, info, warn, error

Password Priority (highest to lowest):
  1. FIELDKEEPER_PASSWORD environment variable
  2. --password-file (file path)
  3. --password (command line)
  4. Interactive prompt (fallback)

Commands:
  register [username]                 Register a new field account
  login [username]                    Login to server
  logout                              Logout from server
  status                              Show session, network and queue status

  report submit --title T --site S    Queue a field report
  report delete <id>                  Queue removal of a report
  report list                         Show reports (cached view plus queued changes)
  staff add --name N [--role R]       Queue a new staff record
  staff update <id> [--name N]        Queue a staff record change
  staff list                          Show staff records
  resync [--reason R]                 Queue a full refresh from the server

  queue [all|pending|failed|completed]  Show queued actions
  queue remove <action-id>            Drop a queued action
  sync                                Send queued actions now
  watch                               Stay online and send actions as connectivity allows

  export [--out FILE] [--encrypt]     Export the local state
  import <file>                       Replace the local state with an export
  clear [--yes]                       Delete queued actions and cached data
  size                                Show the approximate size of local data

Examples:
  fieldkeeper login j.doe
  fieldkeeper report submit --title "Trench A" --site North --notes "clay at 40cm"
  fieldkeeper queue pending
  fieldkeeper sync
  fieldkeeper export --encrypt --out backup.json
  fieldkeeper --server https://field.example.com watch`
