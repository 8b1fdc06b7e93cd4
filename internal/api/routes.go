package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"typedsigner/internal/common"
	"typedsigner/internal/manager"
	"typedsigner/internal/typeddata"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/schema"
)

func (s *APIServer) RegisterRoutes() http.Handler {
	router := gin.New()

	// Register routes
	router.GET("/", s.DefaultHandler) // test handler

	router.POST("/typeddata/v1.0/encode", s.EncodeTypedData)
	router.POST("/typeddata/v1.0/sign", s.SignTypedData)
	router.POST("/typeddata/v1.0/typestring", s.GetTypeString)
	router.GET("/typeddata/v1.0/signature/:digest", s.GetSignature)
	router.GET("/typeddata/v1.0/domain/separator", s.GetDomainSeparator)

	// Wrap the router with CORS middleware
	return s.corsMiddleware(router)
}

func (s *APIServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace "*" with specific origins if needed
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-CSRF-Token")
		w.Header().Set("Access-Control-Allow-Credentials", "false") // Set to "true" if credentials are required

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Proceed with the next handler
		next.ServeHTTP(w, r)
	})
}

var decoder = schema.NewDecoder()

// EncodeTypedData assembles the signable payload for the posted typed data
// and returns its segments plus the digest of their concatenation.
func (s *APIServer) EncodeTypedData(c *gin.Context) {
	body := c.Request.Body
	defer body.Close()

	typed := typeddata.TypedData{}
	if err := json.NewDecoder(body).Decode(&typed); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid typed data"})
		s.logger.Printf("Failed to decode typed data: %v", err)
		return
	}

	segments, err := typeddata.Encode(typed)
	if err != nil {
		s.logger.Printf("Error encoding typed data: %v", err)
		c.JSON(encodeErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	digest := typeddata.Digest(segments)
	if err := s.manager.HandleEncodeEvent(digest.Hex()); err != nil {
		s.logger.Printf("Error broadcasting encode event: %v", err)
	}

	hexSegments := make([]string, 0, len(segments))
	for _, segment := range segments {
		hexSegments = append(hexSegments, hexutil.Encode(segment))
	}

	c.JSON(http.StatusOK, common.EncodeResponse{
		Segments: hexSegments,
		Digest:   digest.Hex(),
	})
}

// SignTypedData signs the posted typed data with the service key, stores the
// result under its digest and broadcasts a SIGNED event.
func (s *APIServer) SignTypedData(c *gin.Context) {
	body := c.Request.Body
	defer body.Close()

	typed := typeddata.TypedData{}
	if err := json.NewDecoder(body).Decode(&typed); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid typed data"})
		s.logger.Printf("Failed to decode typed data: %v", err)
		return
	}

	segments, err := typeddata.Encode(typed)
	if err != nil {
		s.logger.Printf("Error encoding typed data: %v", err)
		c.JSON(encodeErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	signature, err := typeddata.Sign(segments, s.signerKey)
	if err != nil {
		s.logger.Printf("Error signing payload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign payload"})
		return
	}

	entry := &manager.SignatureEntry{
		RequestID:   uuid.New(),
		PrimaryType: typed.PrimaryType,
		Digest:      typeddata.Digest(segments).Hex(),
		Signature:   signature,
		Signer:      s.signerAddr.Hex(),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.manager.SetSignature(entry); err != nil {
		s.logger.Printf("Error storing signature: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store signature"})
		return
	}

	if err := s.manager.HandleSignedEvent(entry); err != nil {
		s.logger.Printf("Error broadcasting signed event: %v", err)
	}

	s.logger.Printf("Signed payload @ digest: %s", entry.Digest)
	c.JSON(http.StatusOK, entry)
}

// GetSignature returns a previously produced signature by payload digest.
func (s *APIServer) GetSignature(c *gin.Context) {
	digest := c.Param("digest")
	if digest == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Digest is required"})
		return
	}

	entry, err := s.manager.GetSignature(digest)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Signature not found"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetTypeString returns the canonical type signature and type hash for the
// posted declarations, via the manager's type-string cache.
func (s *APIServer) GetTypeString(c *gin.Context) {
	body := c.Request.Body
	defer body.Close()

	typed := typeddata.TypedData{}
	if err := json.NewDecoder(body).Decode(&typed); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid typed data"})
		s.logger.Printf("Failed to decode typed data: %v", err)
		return
	}

	typeString, err := s.manager.TypeString(typed.PrimaryType, typed.Types)
	if err != nil {
		s.logger.Printf("Error building type string: %v", err)
		c.JSON(encodeErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, common.TypeStringResponse{
		TypeString: typeString,
		TypeHash:   crypto.Keccak256Hash([]byte(typeString)).Hex(),
	})
}

// GetDomainSeparator hashes an EIP712Domain record built from query
// parameters.
func (s *APIServer) GetDomainSeparator(c *gin.Context) {
	params := common.DomainParams{}
	if err := decoder.Decode(&params, c.Request.URL.Query()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	chainID, err := params.ChainIDValue()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	types := typeddata.Types{typeddata.DomainType: typeddata.DomainFields}
	domain := typeddata.Record{
		"name":              params.Name,
		"version":           params.Version,
		"chainId":           chainID.ToBig(),
		"verifyingContract": params.VerifyingContract,
	}

	separator, err := typeddata.HashStruct(typeddata.DomainType, domain, types)
	if err != nil {
		s.logger.Printf("Error hashing domain: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash domain"})
		return
	}

	c.JSON(http.StatusOK, common.DomainSeparatorResponse{
		DomainSeparator: separator.Hex(),
	})
}

func (s *APIServer) DefaultHandler(c *gin.Context) {
	msg := c.Query("msg")
	if msg == "" {
		msg = "Hello, World!"
	}

	s.manager.Broadcast([]byte(msg))
	c.String(http.StatusOK, "Message broadcasted: %s", msg)
}

// encodeErrorStatus maps encoder failures to response codes: bad input data
// is the caller's fault, anything else is ours.
func encodeErrorStatus(err error) int {
	var missingType *typeddata.MissingTypeDefinitionError
	var missingField *typeddata.MissingFieldValueError
	if errors.As(err, &missingType) || errors.As(err, &missingField) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}
