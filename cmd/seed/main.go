package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shubhamkumaar/socioBuy-backend/internal/config"
	"github.com/shubhamkumaar/socioBuy-backend/internal/graph"
	"github.com/shubhamkumaar/socioBuy-backend/internal/repository"
	"github.com/shubhamkumaar/socioBuy-backend/internal/seed"
)

func main() {
	cfg := seed.DefaultConfig()
	var (
		users       = flag.Int("users", cfg.NumUsers, "number of users to generate")
		products    = flag.Int("products", cfg.NumProducts, "number of products to generate")
		friends     = flag.Int("friends-per-user", cfg.FriendsPerUser, "maximum outgoing FRIEND edges per user")
		orders      = flag.Int("orders-per-user", cfg.MaxOrdersPerUser, "maximum orders per user")
		seedValue   = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir   = flag.String("output-dir", "data", "directory to write the dataset JSON files")
		writeStdout = flag.Bool("stdout", false, "write combined dataset to stdout instead of files")
		load        = flag.Bool("load", false, "load the dataset into the configured graph database")
	)
	flag.Parse()

	genCfg := seed.Config{
		NumUsers:         *users,
		NumProducts:      *products,
		FriendsPerUser:   *friends,
		MaxOrdersPerUser: *orders,
		Seed:             *seedValue,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	gen := seed.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *load {
		total, err := loadIntoGraph(ctx, dataset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load dataset: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "Loaded %d products and %d orders; the graph now holds %d users\n",
			len(dataset.Products), len(dataset.Orders), total)
		return
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := seed.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d users, %d products, %d friendships, %d orders into %s\n",
		len(dataset.Users), len(dataset.Products), len(dataset.Friendships), len(dataset.Orders), *outputDir)
}

func loadIntoGraph(ctx context.Context, dataset seed.Dataset) (int, error) {
	appCfg, err := config.Load()
	if err != nil {
		return 0, fmt.Errorf("load config: %w", err)
	}
	if appCfg.Graph.URI == "" {
		return 0, graph.ErrMissingURI
	}

	client, err := graph.Connect(ctx, graph.Options{
		URI:            appCfg.Graph.URI,
		Database:       appCfg.Graph.Database,
		Username:       appCfg.Graph.Username,
		Password:       appCfg.Graph.Password,
		MaxConnections: appCfg.Graph.MaxConnections,
	})
	if err != nil {
		return 0, fmt.Errorf("connect graph: %w", err)
	}
	defer client.Close(context.Background())

	return seed.Load(ctx, repository.New(client), dataset)
}
