package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"goreadeck/internal/config"
	"goreadeck/internal/logger"
	"goreadeck/pkg/readeck"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(level)

	client, err := readeck.NewClient(
		cfg.Readeck.Host,
		cfg.Readeck.Token,
		readeck.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		log.Errorf("Error creating Readeck client: %v", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx := context.Background()
	if err := run(ctx, client, log, flag.Args()); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client readeck.ClientInterface, log *logger.Logger, args []string) error {
	command := "health"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "health":
		if !client.HealthCheck(ctx) {
			return fmt.Errorf("instance is not reachable")
		}
		fmt.Println("ok")
		return nil

	case "profile":
		profile, err := client.GetUserProfile(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> via %s\n", profile.User.Username, profile.User.Email, profile.Provider.Name)
		return nil

	case "bookmarks":
		bookmarks, err := client.GetBookmarks(ctx, nil)
		if err != nil {
			return err
		}
		log.Debugf("fetched %d bookmarks", len(bookmarks))
		for _, b := range bookmarks {
			fmt.Printf("%s\t%s\t%s\n", b.ID, b.Title, b.URL)
		}
		return nil

	case "export":
		if len(args) < 2 {
			return fmt.Errorf("usage: goreadeck export <bookmark-id>")
		}
		result, err := client.ExportBookmarkParsed(ctx, args[1])
		if err != nil {
			return err
		}
		if result.Metadata != nil {
			log.Infof("exporting %q saved %s", result.Metadata.Title, result.Metadata.Saved)
		}
		fmt.Print(result.Content)
		return nil

	case "highlights":
		resp, err := client.GetHighlights(ctx, nil)
		if err != nil {
			return err
		}
		log.Debugf("page %d of %d, %d highlights total", resp.Page, resp.TotalPages, resp.TotalCount)
		for _, h := range resp.Items {
			fmt.Printf("%s\t%s\t%q\n", h.ID, h.BookmarkTitle, h.Text)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q (expected health, profile, bookmarks, export or highlights)", command)
	}
}
