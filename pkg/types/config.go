package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Bearer token signing key (base64 encoded)
	// openssl rand -base64 32
	// to generate a value
	TokenSigningKey string `envconfig:"TOKEN_SIGNING_KEY"`
	TokenTTLMin     uint   `envconfig:"TOKEN_TTL_MIN" default:"1440"`

	// File storage
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"disk"`
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	S3BucketName   string `envconfig:"S3_BUCKET_NAME"`

	// Face recognition service
	AIAPIURL string `envconfig:"AI_API_URL"`
}
