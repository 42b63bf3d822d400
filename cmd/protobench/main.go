package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/protobench/v1/app"
	"github.com/Aleph-Alpha/protobench/v1/config"
	"github.com/Aleph-Alpha/protobench/v1/probe"
)

// CLI is the protobench command line.
type CLI struct {
	Config string `help:"Path to a TOML config file." short:"c" type:"path" env:"PROTOBENCH_CONFIG"`

	Serve    ServeCmd    `cmd:"" default:"1" help:"Run the HTTP server."`
	Compile  CompileCmd  `cmd:"" help:"Compile .proto files and list their message types."`
	List     ListCmd     `cmd:"" help:"List the message types of every compiled schema."`
	Generate GenerateCmd `cmd:"" help:"Print generated test data for a message type."`
	Test     TestCmd     `cmd:"" help:"Send one test request to an API."`
}

type ServeCmd struct{}

func (c *ServeCmd) Run(cfg config.Config) error {
	fx.New(app.Server(cfg)).Run()
	return nil
}

type CompileCmd struct {
	Files []string `arg:"" help:"Schema files to compile." type:"existingfile"`
}

func (c *CompileCmd) Run(cfg config.Config) error {
	return withService(cfg, func(ctx context.Context, svc *probe.Service) error {
		for _, f := range c.Files {
			content, err := os.ReadFile(f)
			if err != nil {
				return err
			}
			res, err := svc.Upload(ctx, filepath.Base(f), content)
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			if err := printJSON(res); err != nil {
				return err
			}
		}
		return nil
	})
}

type ListCmd struct{}

func (c *ListCmd) Run(cfg config.Config) error {
	return withService(cfg, func(ctx context.Context, svc *probe.Service) error {
		all, err := svc.AllMessageTypes(ctx)
		if err != nil {
			return err
		}
		schemas := make([]string, 0, len(all))
		for s := range all {
			schemas = append(schemas, s)
		}
		sort.Strings(schemas)
		for _, s := range schemas {
			fmt.Println(s)
			for _, t := range all[s] {
				fmt.Println("  " + t)
			}
		}
		return nil
	})
}

type GenerateCmd struct {
	MessageType string `arg:"" help:"Message type, short or fully qualified."`
}

func (c *GenerateCmd) Run(cfg config.Config) error {
	return withService(cfg, func(ctx context.Context, svc *probe.Service) error {
		sample, err := svc.GenerateSample(ctx, c.MessageType)
		if err != nil {
			return err
		}
		return printJSON(sample)
	})
}

type TestCmd struct {
	URL         string            `arg:"" help:"Target API URL."`
	MessageType string            `short:"t" name:"type" help:"Message type to send. Not needed for GET."`
	Protocol    string            `short:"p" default:"rest" enum:"rest,json,text,protobuf,binary,proto" help:"Payload encoding."`
	Method      string            `short:"X" default:"POST" help:"HTTP method: GET, POST or PUT."`
	Data        string            `short:"d" help:"Protobuf JSON to send instead of generated data."`
	Header      map[string]string `short:"H" help:"Extra request headers (key=value)."`
}

func (c *TestCmd) Run(cfg config.Config) error {
	return withService(cfg, func(ctx context.Context, svc *probe.Service) error {
		res := svc.Test(ctx, probe.TestRequest{
			APIURL:      c.URL,
			MessageType: c.MessageType,
			Protocol:    c.Protocol,
			Method:      c.Method,
			CustomData:  c.Data,
			Headers:     c.Header,
		})
		if err := printJSON(res); err != nil {
			return err
		}
		if !res.Success {
			return errors.New(res.Error)
		}
		return nil
	})
}

// withService starts the application without the HTTP server, runs fn and
// stops it again.
func withService(cfg config.Config, fn func(context.Context, *probe.Service) error) error {
	var svc *probe.Service
	fxApp := fx.New(
		app.Core(cfg),
		fx.Populate(&svc),
		fx.NopLogger,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = fxApp.Stop(stopCtx)
	}()

	return fn(context.Background(), svc)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("protobench"),
		kong.Description("Compile protobuf schemas, generate test payloads and exercise APIs with them."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)

	ctx.FatalIfErrorf(ctx.Run(cfg))
}
