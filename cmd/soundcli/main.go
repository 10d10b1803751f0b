// Package main provides a CLI for ad-hoc SoundCloud API calls.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/soundbox/internal/infra/config"
	"github.com/osa030/soundbox/internal/infra/logger"
	"github.com/osa030/soundbox/soundcloud"
)

var (
	app         = kingpin.New("soundcli", "SoundCloud API command-line client")
	configPath  = app.Flag("config", "Path to config file").Default("config/soundbox.yaml").String()
	verbose     = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	accessToken = app.Flag("access-token", "Access token for authenticated calls").Envar("SOUNDCLOUD_ACCESS_TOKEN").String()

	// get command
	getCmd    = app.Command("get", "GET a resource path and print the decoded JSON")
	getPath   = getCmd.Arg("path", "Resource path or absolute URL").Required().String()
	getParams = getCmd.Flag("param", "Query parameter as key=value (repeatable)").Strings()
	getNoAuth = getCmd.Flag("no-auth", "Skip the Authorization header").Bool()

	// embed command
	embedCmd       = app.Command("embed", "Look up the player widget for a public URL")
	embedURL       = embedCmd.Arg("url", "Public resource URL").Required().String()
	embedMaxHeight = embedCmd.Flag("maxheight", "Maximum widget height in pixels").Default("180").Int()

	// resolve command
	resolveCmd = app.Command("resolve", "Resolve a permalink URL to its API resource")
	resolveURL = resolveCmd.Arg("url", "Permalink URL").Required().String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	loggerConfig := logger.Config{
		Output: cfg.Logging.Output,
		Level:  cfg.Logging.Level,
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if err := logger.Init(loggerConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	client, err := soundcloud.New(soundcloud.Config{
		ClientID:     cfg.SoundCloud.ClientID,
		ClientSecret: cfg.SoundCloud.ClientSecret,
		CallbackURL:  cfg.SoundCloud.CallbackURL,
	})
	if err != nil {
		zlog.Fatal().Msgf("Failed to create client: %v", err)
	}
	if *accessToken != "" {
		client.SetAccessToken(*accessToken)
	}

	ctx := context.Background()

	switch command {
	case getCmd.FullCommand():
		get(ctx, client)
	case embedCmd.FullCommand():
		embed(ctx, client)
	case resolveCmd.FullCommand():
		resolve(ctx, client)
	}
}

func get(ctx context.Context, client *soundcloud.Client) {
	query := url.Values{}
	for _, p := range *getParams {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			zlog.Fatal().Msgf("Invalid query parameter: %s (expected key=value)", p)
		}
		query.Add(key, value)
	}

	var opts []soundcloud.RequestOption
	if *getNoAuth {
		opts = append(opts, soundcloud.Unauthenticated())
	}

	res, err := client.Get(ctx, *getPath, query, opts...)
	if err != nil {
		zlog.Fatal().Msgf("Request failed: %v", err)
	}
	printJSON(res)
}

func embed(ctx context.Context, client *soundcloud.Client) {
	html, err := client.PlayerEmbed(ctx, *embedURL, soundcloud.EmbedMaxHeight(*embedMaxHeight))
	if err != nil {
		zlog.Fatal().Msgf("Embed lookup failed: %v", err)
	}
	fmt.Println(html)
}

func resolve(ctx context.Context, client *soundcloud.Client) {
	res, err := client.Resolve(ctx, *resolveURL)
	if err != nil {
		zlog.Fatal().Msgf("Resolve failed: %v", err)
	}
	printJSON(res)
}

func printJSON(v soundcloud.Value) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		zlog.Fatal().Msgf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}
