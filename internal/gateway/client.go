package gateway

import (
	"fmt"
	"os"
	"time"

	"github.com/hyperledger/fabric-gateway/pkg/client"
	"github.com/hyperledger/fabric-gateway/pkg/identity"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// Contract is the slice of the Fabric contract surface the HTTP layer
// needs. Submit goes through ordering; Evaluate reads a single peer.
type Contract interface {
	SubmitTransaction(name string, args ...string) ([]byte, error)
	EvaluateTransaction(name string, args ...string) ([]byte, error)
}

// Client owns the grpc connection and gateway session for one identity.
type Client struct {
	conn     *grpc.ClientConn
	gw       *client.Gateway
	contract *client.Contract
}

// Connect dials the peer and opens a gateway session for the configured
// channel and chaincode.
func Connect(cfg Config) (*Client, error) {
	creds, err := credentials.NewClientTLSFromFile(cfg.TLSCertPath, cfg.GatewayPeer)
	if err != nil {
		return nil, fmt.Errorf("loading peer TLS certificate: %w", err)
	}

	conn, err := grpc.NewClient(cfg.PeerEndpoint, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("dialing peer %s: %w", cfg.PeerEndpoint, err)
	}

	id, err := newIdentity(cfg.MSPID, cfg.CertPath)
	if err != nil {
		conn.Close()
		return nil, err
	}
	sign, err := newSigner(cfg.KeyPath)
	if err != nil {
		conn.Close()
		return nil, err
	}

	gw, err := client.Connect(
		id,
		client.WithSign(sign),
		client.WithClientConnection(conn),
		client.WithEvaluateTimeout(5*time.Second),
		client.WithEndorseTimeout(15*time.Second),
		client.WithSubmitTimeout(5*time.Second),
		client.WithCommitStatusTimeout(1*time.Minute),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting gateway: %w", err)
	}

	network := gw.GetNetwork(cfg.ChannelName)
	return &Client{
		conn:     conn,
		gw:       gw,
		contract: network.GetContract(cfg.ChaincodeName),
	}, nil
}

// Contract returns the chaincode handle for submit/evaluate calls.
func (c *Client) Contract() Contract {
	return c.contract
}

// Close tears down the gateway session and the underlying connection.
func (c *Client) Close() {
	c.gw.Close()
	c.conn.Close()
}

func newIdentity(mspID, certPath string) (*identity.X509Identity, error) {
	pem, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("reading identity certificate: %w", err)
	}
	cert, err := identity.CertificateFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("parsing identity certificate: %w", err)
	}
	return identity.NewX509Identity(mspID, cert)
}

func newSigner(keyPath string) (identity.Sign, error) {
	pem, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}
	key, err := identity.PrivateKeyFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	return identity.NewPrivateKeySign(key)
}
