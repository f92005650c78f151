package gateway

// Config carries everything needed to reach one endorsing peer as a single
// organization identity. Values load from VEG_-prefixed env vars.
type Config struct {
	MSPID         string `envconfig:"MSP_ID" default:"Org1MSP"`
	PeerEndpoint  string `envconfig:"PEER_ENDPOINT" default:"localhost:7051"`
	GatewayPeer   string `envconfig:"GATEWAY_PEER" default:"peer0.org1.example.com"`
	TLSCertPath   string `envconfig:"TLS_CERT_PATH" required:"true"`
	CertPath      string `envconfig:"CERT_PATH" required:"true"`
	KeyPath       string `envconfig:"KEY_PATH" required:"true"`
	ChannelName   string `envconfig:"CHANNEL_NAME" default:"mychannel"`
	ChaincodeName string `envconfig:"CHAINCODE_NAME" default:"vegetable"`
}
