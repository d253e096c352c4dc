package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrianGithinji-BMG/Credit--Scoring/pkg/tlsutil"
)

func newCertsCmd(_ *rootOptions) *cobra.Command {
	var (
		outDir string
		hosts  []string
	)

	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Generate a development CA with server and client certificates",
		Long: `certs writes a throwaway CA plus server and client certificates for running
the daemon with GRPC_TLS_CERT_FILE, GRPC_TLS_KEY_FILE and, for mutual TLS,
GRPC_TLS_CLIENT_CA_FILE. Not for production use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			certs, err := tlsutil.GenerateDevCertificates(outDir, hosts...)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "GRPC_TLS_CERT_FILE=%s\n", certs.ServerCert)
			fmt.Fprintf(w, "GRPC_TLS_KEY_FILE=%s\n", certs.ServerKey)
			fmt.Fprintf(w, "GRPC_TLS_CLIENT_CA_FILE=%s\n", certs.CACert)
			fmt.Fprintf(w, "# client: --ca-file %s --cert-file %s --key-file %s\n", certs.CACert, certs.ClientCert, certs.ClientKey)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "certs", "Output directory")
	cmd.Flags().StringSliceVar(&hosts, "host", []string{"localhost", "127.0.0.1"}, "Server host names or IPs (repeatable)")
	return cmd
}
