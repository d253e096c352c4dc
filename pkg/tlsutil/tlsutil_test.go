package tlsutil

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestGenerateDevCertificates(t *testing.T) {
	certs, err := GenerateDevCertificates(t.TempDir(), "localhost", "127.0.0.1")
	require.NoError(t, err)

	for _, p := range []string{certs.CACert, certs.CAKey, certs.ServerCert, certs.ServerKey, certs.ClientCert, certs.ClientKey} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
}

func TestGenerateDevCertificates_RequiresHost(t *testing.T) {
	_, err := GenerateDevCertificates(t.TempDir())
	require.Error(t, err)
}

// serveHealth starts a health-only gRPC server with the given credentials.
func serveHealth(t *testing.T, files ServerFiles) string {
	t.Helper()
	creds, err := ServerCredentials(files)
	require.NoError(t, err)

	gs := grpc.NewServer(grpc.Creds(creds))
	healthpb.RegisterHealthServer(gs, health.NewServer())
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)
	return lis.Addr().String()
}

func check(t *testing.T, addr string, files ClientFiles) error {
	t.Helper()
	creds, err := ClientCredentials(files)
	require.NoError(t, err)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	_, err = healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	return err
}

func TestCredentials_TLSHandshake(t *testing.T) {
	certs, err := GenerateDevCertificates(t.TempDir(), "localhost", "127.0.0.1")
	require.NoError(t, err)

	addr := serveHealth(t, ServerFiles{CertFile: certs.ServerCert, KeyFile: certs.ServerKey})
	assert.NoError(t, check(t, addr, ClientFiles{CAFile: certs.CACert}))
}

func TestCredentials_MutualTLS(t *testing.T) {
	certs, err := GenerateDevCertificates(t.TempDir(), "127.0.0.1")
	require.NoError(t, err)

	addr := serveHealth(t, ServerFiles{CertFile: certs.ServerCert, KeyFile: certs.ServerKey, ClientCAFile: certs.CACert})

	assert.NoError(t, check(t, addr, ClientFiles{CAFile: certs.CACert, CertFile: certs.ClientCert, KeyFile: certs.ClientKey}))
	assert.Error(t, check(t, addr, ClientFiles{CAFile: certs.CACert}), "client without certificate must be refused")
}

func TestServerCredentials_MissingFiles(t *testing.T) {
	_, err := ServerCredentials(ServerFiles{CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load server key pair")
}

func TestClientCredentials_Errors(t *testing.T) {
	garbage := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a certificate"), 0o600))

	_, err := ClientCredentials(ClientFiles{CAFile: garbage})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CA certificate found")

	_, err = ClientCredentials(ClientFiles{CertFile: "/nonexistent/client.pem"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load client key pair")
}
