package main

import (
    "context"
    "errors"
    "fmt"
    "io"
    "net/http"
    "os"
    "os/signal"
    "path/filepath"
    "syscall"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/spf13/cobra"
    "go.uber.org/zap"

    "scriptforum.org/catalog-web/internal/catalog"
    "scriptforum.org/catalog-web/internal/category"
    "scriptforum.org/catalog-web/internal/config"
    "scriptforum.org/catalog-web/internal/i18n"
    mw "scriptforum.org/catalog-web/internal/middleware"
    "scriptforum.org/catalog-web/internal/observability"
    "scriptforum.org/catalog-web/internal/richtext"
)

func main() {
    if err := newRootCmd().Execute(); err != nil {
        os.Exit(1)
    }
}

// app is the explicit application context shared by every handler. It is built
// once at startup; the catalog itself lives behind the store and is swapped on reload.
type app struct {
    cfg        config.Config
    logger     *zap.Logger
    store      *catalog.Store
    categories *category.Registry
    i18n       *i18n.Bundle
    rich       *richtext.Renderer
    tmpl       *templateSet
}

func newRootCmd() *cobra.Command {
    var envFile, dataSource string

    root := &cobra.Command{
        Use:          "catalog-web",
        Short:        "Script catalog browser",
        Long:         `Serves a searchable list and detail pages for the scripts described in a forumItems JSON document.`,
        SilenceUsage: true,
    }
    root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with CATALOG_WEB_* overrides")
    root.PersistentFlags().StringVar(&dataSource, "data", "", "catalog document path or http(s) URL")

    loadConfig := func() (config.Config, error) {
        cfg, err := config.Load(config.WithEnvFile(envFile))
        if err != nil {
            return config.Config{}, err
        }
        if dataSource != "" {
            cfg.Catalog.Source = dataSource
        }
        return cfg, nil
    }

    root.AddCommand(newServeCmd(loadConfig), newCheckCmd(loadConfig))
    return root
}

func newServeCmd(loadConfig func() (config.Config, error)) *cobra.Command {
    var (
        addr     string
        tmplPath string
        pubPath  string
        watch    bool
        dev      bool
    )
    cmd := &cobra.Command{
        Use:   "serve",
        Short: "Run the HTTP server",
        RunE: func(cmd *cobra.Command, args []string) error {
            cfg, err := loadConfig()
            if err != nil {
                return err
            }
            flags := cmd.Flags()
            if flags.Changed("addr") {
                cfg.Server.Addr = addr
            }
            if flags.Changed("templates") {
                cfg.Web.TemplatesDir = tmplPath
            }
            if flags.Changed("public") {
                cfg.Web.PublicDir = pubPath
            }
            if flags.Changed("watch") {
                cfg.Catalog.Watch = watch
            }
            if flags.Changed("dev") {
                cfg.Web.DevMode = dev
            }
            if err := cfg.Validate(); err != nil {
                return err
            }
            return runServe(cmd.Context(), cfg)
        },
    }
    cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address")
    cmd.Flags().StringVar(&tmplPath, "templates", "", "templates directory")
    cmd.Flags().StringVar(&pubPath, "public", "", "public assets directory")
    cmd.Flags().BoolVar(&watch, "watch", false, "reload the catalog when the local document changes")
    cmd.Flags().BoolVar(&dev, "dev", false, "reparse templates on every request")
    return cmd
}

func newCheckCmd(loadConfig func() (config.Config, error)) *cobra.Command {
    return &cobra.Command{
        Use:   "check",
        Short: "Load the catalog once and print its statistics",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            cfg, err := loadConfig()
            if err != nil {
                return err
            }
            return runCheck(cmd.Context(), cfg, cmd.OutOrStdout())
        },
    }
}

// runCheck loads the document and reports counts plus the derived category index.
func runCheck(ctx context.Context, cfg config.Config, out io.Writer) error {
    if ctx == nil {
        ctx = context.Background()
    }
    loader := catalog.NewLoader(cfg.Catalog.Source, catalog.WithFetchTimeout(cfg.Catalog.FetchTimeout))
    cat, err := loader.Load(ctx)
    if err != nil {
        return err
    }
    registry, err := category.LoadFile(cfg.Catalog.CategoriesFile)
    if err != nil {
        return err
    }
    st := cat.Stats()
    fmt.Fprintf(out, "source:     %s\n", cat.Source())
    fmt.Fprintf(out, "items:      %d\n", st.Items)
    fmt.Fprintf(out, "categories: %d\n", st.Categories)
    fmt.Fprintf(out, "downloads:  %d\n", st.Downloads)
    for _, tag := range category.Index(cat.Items()) {
        if tag == category.All {
            continue
        }
        fmt.Fprintf(out, "  - %s (%s, %s)\n", tag, registry.Name(tag), registry.Color(tag))
    }
    return nil
}

func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
    bundle, err := i18n.Load(cfg.Web.LocalesDir, cfg.Web.DefaultLang, cfg.Web.SupportedLangs)
    if err != nil {
        return nil, fmt.Errorf("load locales: %w", err)
    }
    registry, err := category.LoadFile(cfg.Catalog.CategoriesFile)
    if err != nil {
        return nil, err
    }
    a := &app{
        cfg:        cfg,
        logger:     logger,
        categories: registry,
        i18n:       bundle,
        rich:       richtext.New(),
    }
    a.store = catalog.NewStore(
        catalog.NewLoader(cfg.Catalog.Source, catalog.WithFetchTimeout(cfg.Catalog.FetchTimeout)),
        logger.Named("catalog"),
    )
    a.tmpl = newTemplateSet(cfg.Web.TemplatesDir, cfg.Web.DevMode, a.funcMap())
    if !cfg.Web.DevMode {
        // Parse templates once in production
        if err := a.tmpl.init(); err != nil {
            return nil, fmt.Errorf("parse templates: %w", err)
        }
    }
    return a, nil
}

func runServe(ctx context.Context, cfg config.Config) error {
    if ctx == nil {
        ctx = context.Background()
    }
    logger, err := observability.NewLogger(cfg.Log.Level)
    if err != nil {
        return fmt.Errorf("build logger: %w", err)
    }
    defer func() { _ = logger.Sync() }()

    a, err := newApp(cfg, logger)
    if err != nil {
        return err
    }

    ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
    defer stop()

    // A failed first load is not fatal: pages render the load-error state and
    // readyz reports 503 until a reload succeeds.
    _ = a.store.Load(ctx)
    if cfg.Catalog.Watch {
        if err := a.store.Watch(ctx, cfg.Catalog.WatchDebounce); err != nil {
            logger.Warn("catalog watch disabled", zap.Error(err))
        }
    }

    srv := &http.Server{
        Addr:              cfg.Server.Addr,
        Handler:           a.routes(),
        ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
        ReadTimeout:       cfg.Server.ReadTimeout,
        WriteTimeout:      cfg.Server.WriteTimeout,
        IdleTimeout:       cfg.Server.IdleTimeout,
    }

    errCh := make(chan error, 1)
    go func() {
        logger.Info("web listening",
            zap.String("addr", cfg.Server.Addr),
            zap.Bool("dev_mode", cfg.Web.DevMode),
            zap.String("source", cfg.Catalog.Source))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            errCh <- err
        }
        close(errCh)
    }()

    select {
    case err := <-errCh:
        if err != nil {
            return fmt.Errorf("listen: %w", err)
        }
        return nil
    case <-ctx.Done():
    }

    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    logger.Info("shutting down")
    return srv.Shutdown(shutdownCtx)
}

// routes wires middleware and handlers. Tests build the same router.
func (a *app) routes() http.Handler {
    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    // If deployed behind a trusted reverse proxy/load balancer, RealIP will use
    // X-Forwarded-For to determine the client IP. Ensure only trusted proxies
    // can set these headers in production environments.
    r.Use(middleware.RealIP)
    r.Use(mw.Logger(a.logger))
    r.Use(middleware.Recoverer)
    r.Use(middleware.Compress(5))
    if a.cfg.Server.RequestTimeout > 0 {
        r.Use(middleware.Timeout(a.cfg.Server.RequestTimeout))
    }
    r.Use(mw.HTMX)
    r.Use(mw.Locale(a.i18n))
    r.Use(mw.Theme)

    r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "text/plain; charset=utf-8")
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    r.Get("/readyz", a.ReadyHandler)

    // Static assets under /assets/ and item images under /images/
    r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(a.cfg.Web.PublicDir, "assets"), "")))
    r.Handle("/images/*", http.StripPrefix("/images", mw.AssetsWithCache(filepath.Join(a.cfg.Web.PublicDir, "images"), "")))

    r.Get("/", a.ListHandler)
    r.Get("/index.html", a.ListHandler)
    r.Get("/items", a.ListFrag)
    r.Get("/detail", a.DetailHandler)
    r.Get("/detail.html", a.DetailHandler)
    r.Get("/data.json", a.DataHandler)

    r.NotFound(a.NotFoundHandler)
    return r
}

// ReadyHandler reports 200 once a catalog snapshot is loaded.
func (a *app) ReadyHandler(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "text/plain; charset=utf-8")
    if !a.store.Ready() {
        w.WriteHeader(http.StatusServiceUnavailable)
        _, _ = w.Write([]byte("catalog not loaded"))
        return
    }
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write([]byte("ok"))
}

// DataHandler re-serves the active snapshot as a forumItems document.
func (a *app) DataHandler(w http.ResponseWriter, r *http.Request) {
    cat, err := a.store.Catalog()
    if err != nil {
        http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
        return
    }
    w.Header().Set("Content-Type", "application/json; charset=utf-8")
    w.Header().Set("Cache-Control", "no-cache")
    if err := catalog.Encode(w, cat.Items()); err != nil {
        observability.FromContext(r.Context()).Error("encode catalog", zap.Error(err))
    }
}
