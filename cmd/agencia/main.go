package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/4ftech/agencia"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	// Optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "reindex":
		dir := agencia.EnvOr("CONTENT_DIR", "content")
		if len(os.Args) > 2 {
			dir = os.Args[2]
		}
		if err := runReindex(dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("agencia %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	cfg := agencia.SiteConfig{
		Name:        agencia.EnvOr("SITE_NAME", "4FTech"),
		URL:         agencia.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: agencia.EnvOr("SITE_DESCRIPTION", "Marketing que gera resultados"),
		Author:      agencia.EnvOr("SITE_AUTHOR", "4FTech"),

		Addr:          agencia.EnvOr("ADDR", ":3000"),
		ContentDir:    agencia.EnvOr("CONTENT_DIR", "content"),
		UploadDir:     agencia.EnvOr("UPLOAD_DIR", "public/uploads/blogs/images"),
		UploadURLPath: agencia.EnvOr("UPLOAD_URL_PATH", "/uploads/blogs/images"),

		AdminEmails:   splitList(agencia.MustEnv("ADMIN_EMAILS")),
		SessionSecret: agencia.MustEnv("SESSION_SECRET"),
		CookieSecure:  agencia.EnvOr("COOKIE_SECURE", "false") == "true",

		AnalyticsEnabled:      agencia.EnvOr("ANALYTICS_ENABLED", "true") == "true",
		AnalyticsDatabasePath: agencia.EnvOr("ANALYTICS_DB_PATH", "data/analytics.db"),
	}

	app := agencia.New(cfg)
	defer app.Close()
	return app.Start()
}

func runReindex(dir string) error {
	store, err := agencia.NewContentStore(dir)
	if err != nil {
		return err
	}
	n, err := store.Reindex()
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d posts in %s\n", n, dir)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printUsage() {
	fmt.Println(`agencia - Marketing-agency site server with a file-backed blog

Usage:
  agencia <command> [arguments]

Commands:
  serve           Start the site server (default)
  reindex [dir]   Rebuild the blog metadata index from the documents
  version         Print the agencia version
  help            Show this help message

Environment:
  ADMIN_EMAILS    Comma-separated admin allow-list (required)
  SESSION_SECRET  Session cookie secret (required)
  ADDR            Listen address (default :3000)
  CONTENT_DIR     Blog content root (default content)`)
}
