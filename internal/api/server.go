package api

import (
	"crypto/ecdsa"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"typedsigner/internal/manager"
	"typedsigner/internal/typeddata"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	_ "github.com/joho/godotenv/autoload"
)

type APIServer struct {
	port       int
	signerKey  *ecdsa.PrivateKey
	signerAddr ethcommon.Address
	manager    *manager.Manager
	logger     *log.Logger
}

func NewAPIServer(m *manager.Manager, logger *log.Logger) *http.Server {
	port, _ := strconv.Atoi(os.Getenv("API_PORT"))

	signerKey, err := typeddata.ParsePrivateKey(os.Getenv("SIGNER_KEY"))
	if err != nil {
		logger.Panicf("SIGNER_KEY: %v", err)
	}

	NewAPIServer := &APIServer{
		port:       port,
		signerKey:  signerKey,
		signerAddr: crypto.PubkeyToAddress(signerKey.PublicKey),
		manager:    m,
		logger:     logger,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewAPIServer.port),
		Handler:      NewAPIServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
