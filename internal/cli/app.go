package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/riverfjs/mdlite-go/internal/access"
	"github.com/riverfjs/mdlite-go/internal/config"
	"github.com/riverfjs/mdlite-go/internal/extract"
	"github.com/riverfjs/mdlite-go/internal/store"
	"github.com/riverfjs/mdlite-go/internal/types"
)

// App aggregates the services the subcommands share.
type App struct {
	V       *viper.Viper
	Log     *log.Logger
	Role    access.Role
	Render  *types.RenderConfig
	DBPath  string
	Verbose bool
}

// BuildApp wires dependencies from a loaded and validated Viper instance.
func BuildApp(v *viper.Viper, logOut io.Writer, verbose bool) (*App, error) {
	role, err := access.ParseRole(v.GetString("role"))
	if err != nil {
		return nil, err
	}
	return &App{
		V:       v,
		Log:     log.New(logOut, "[mdlite] ", log.LstdFlags),
		Role:    role,
		Render:  config.RenderConfig(v),
		DBPath:  config.ResolveDBPath(v),
		Verbose: verbose,
	}, nil
}

func (a *App) infof(format string, args ...any) {
	if a.Verbose {
		a.Log.Printf(format, args...)
	}
}

// Authorize fails with access.ErrForbidden when the configured role may not act.
func (a *App) Authorize(action access.Action) error {
	return access.Check(a.Role, action)
}

// WithStore opens the record store for the duration of fn.
func (a *App) WithStore(ctx context.Context, fn func(*store.Store) error) error {
	st, err := store.Open(ctx, a.DBPath)
	if err != nil {
		return fmt.Errorf("open store %s: %w", a.DBPath, err)
	}
	defer st.Close()
	a.infof("store opened: %s", a.DBPath)
	return fn(st)
}

// Extractor builds a QA extractor for the configured llm.provider.
func (a *App) Extractor() (*extract.Extractor, error) {
	settings := config.LLMSettings(a.V)
	var client extract.LLMClient
	switch settings.Provider {
	case "mock":
		client = extract.MockLLM{}
	default:
		llm, err := extract.NewOpenAILLMFromConfig(settings)
		if err != nil {
			return nil, err
		}
		client = llm
	}
	ex, err := extract.NewExtractor(client)
	if err != nil {
		return nil, err
	}
	ex.MaxAttempts = a.V.GetInt("llm.max_attempts")
	if a.Verbose {
		ex.Logger = a.Log
	}
	return ex, nil
}

type ctxKey string

const appKey ctxKey = "app"

func getApp(cmd *cobra.Command) (*App, error) {
	app, ok := cmd.Context().Value(appKey).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("internal error: app not initialized")
	}
	return app, nil
}
