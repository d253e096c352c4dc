package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"gopkg.in/yaml.v3"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/dto"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/usecase"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/service"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/infrastructure/kafka"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/infrastructure/scorecard"
	grpcPresentation "github.com/BrianGithinji-BMG/Credit--Scoring/internal/presentation/grpc"
	"github.com/BrianGithinji-BMG/Credit--Scoring/pkg/tlsutil"
)

const defaultScorecard = "demographic-financial"

type scoreOptions struct {
	scorecard string
	farmerID  string
	file      string
	set       []string
	dir       string
	output    string

	server  string
	tls     tlsutil.ClientFiles
	timeout time.Duration
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one farmer record",
		Long: `Score one farmer record read from --file (YAML or JSON) and/or --set key=value
pairs. Values given with --set override the file. Numbers are numeric inputs,
anything else is categorical.

With --server the record is sent to a running farmscore daemon over gRPC;
otherwise it is scored locally.`,
		Example: `  farmscore score --scorecard farm-operations --file farmer.yaml
  farmscore score --set age=30 --set marital_status=Married ...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			attrs, err := readRecord(opts.file, opts.set)
			if err != nil {
				return err
			}
			req := dto.ScoreRequest{Scorecard: opts.scorecard, FarmerID: opts.farmerID, Attributes: attrs}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			var resp dto.ScoreResponse
			if opts.server != "" {
				resp, err = scoreRemote(ctx, opts, req)
			} else {
				resp, err = scoreLocal(ctx, root, opts.dir, req)
			}
			if err != nil {
				return err
			}
			return writeScore(cmd.OutOrStdout(), opts.output, resp)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.scorecard, "scorecard", "s", defaultScorecard, "Scorecard to score against")
	f.StringVar(&opts.farmerID, "farmer-id", "", "Farmer identifier echoed in the result")
	f.StringVarP(&opts.file, "file", "f", "", "Record file (.yaml, .yml or .json)")
	f.StringArrayVar(&opts.set, "set", nil, "Attribute value as key=value (repeatable)")
	f.StringVar(&opts.dir, "dir", "", "Directory of additional scorecard definitions")
	f.StringVarP(&opts.output, "output", "o", "text", "Output format: text or json")
	f.StringVar(&opts.server, "server", "", "Score remotely against a daemon at host:port")
	f.StringVar(&opts.tls.CAFile, "ca-file", "", "CA certificate for TLS to --server")
	f.StringVar(&opts.tls.CertFile, "cert-file", "", "Client certificate for mutual TLS")
	f.StringVar(&opts.tls.KeyFile, "key-file", "", "Client key for mutual TLS")
	f.StringVar(&opts.tls.ServerName, "server-name", "", "Override the TLS server name")
	f.BoolVar(&opts.tls.InsecureSkipVerify, "insecure-skip-verify", false, "Skip TLS certificate verification")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	return cmd
}

// readRecord merges the record file with --set overrides.
func readRecord(file string, set []string) (map[string]valueobject.AttributeValue, error) {
	attrs := make(map[string]valueobject.AttributeValue)

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read record file: %w", err)
		}
		switch strings.ToLower(filepath.Ext(file)) {
		case ".json":
			err = json.Unmarshal(data, &attrs)
		default:
			err = yaml.Unmarshal(data, &attrs)
		}
		if err != nil {
			return nil, fmt.Errorf("parse record file %s: %w", file, err)
		}
	}

	for _, kv := range set {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", kv)
		}
		attrs[key] = valueobject.ParseAttributeValue(value)
	}

	if len(attrs) == 0 {
		return nil, fmt.Errorf("no attributes given: use --file or --set")
	}
	return attrs, nil
}

func scoreLocal(ctx context.Context, root *rootOptions, dir string, req dto.ScoreRequest) (dto.ScoreResponse, error) {
	logger := root.log()
	registry, err := scorecard.Load(defaultScorecard, dir)
	if err != nil {
		return dto.ScoreResponse{}, err
	}
	uc := usecase.NewScoreFarmerUseCase(
		registry,
		service.NewNormalizer(logger, nil),
		kafka.NewLogEventPublisher(logger),
		nil,
		logger,
	)
	return uc.Execute(ctx, req)
}

func scoreRemote(ctx context.Context, opts *scoreOptions, req dto.ScoreRequest) (dto.ScoreResponse, error) {
	var creds credentials.TransportCredentials = insecure.NewCredentials()
	if opts.tls != (tlsutil.ClientFiles{}) {
		tlsCreds, err := tlsutil.ClientCredentials(opts.tls)
		if err != nil {
			return dto.ScoreResponse{}, fmt.Errorf("load TLS config: %w", err)
		}
		creds = tlsCreds
	}

	conn, err := grpclib.NewClient(opts.server, grpclib.WithTransportCredentials(creds))
	if err != nil {
		return dto.ScoreResponse{}, fmt.Errorf("dial %s: %w", opts.server, err)
	}
	defer func() { _ = conn.Close() }() //nolint:errcheck // best-effort close

	resp, err := grpcPresentation.NewScoringServiceClient(conn).Score(ctx, &req)
	if err != nil {
		return dto.ScoreResponse{}, err
	}
	return *resp, nil
}

func writeScore(w io.Writer, format string, resp dto.ScoreResponse) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "text":
		fmt.Fprintf(w, "Scorecard:  %s\n", resp.Scorecard)
		if resp.FarmerID != "" {
			fmt.Fprintf(w, "Farmer:     %s\n", resp.FarmerID)
		}
		fmt.Fprintf(w, "Score:      %s\n", resp.Score.StringFixed(2))
		fmt.Fprintf(w, "Tier:       %s\n", resp.TierLabel)
		fmt.Fprintln(w)
		for _, c := range resp.Categories {
			fmt.Fprintf(w, "  %-20s %6s / %s\n", c.Category, c.Contribution.StringFixed(2), c.Weight.Mul(c.Blend).String())
		}
		for _, warn := range resp.Warnings {
			fmt.Fprintf(w, "warning: %s\n", warn)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
