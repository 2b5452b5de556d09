package configs

// Storage holds configuration for the Supabase Storage backend where
// advertisement images are kept. URL is the project base URL, ServiceKey
// a service-role API key with storage permissions. The bucket is created
// on startup when it does not exist.
type Storage struct {
	// URL is the Supabase project base URL, e.g. https://xyz.supabase.co.
	URL string `env:"URL"`
	// ServiceKey authenticates storage requests.
	ServiceKey string `env:"SERVICE_KEY"`
	// Bucket is the storage bucket holding advertisement images.
	Bucket string `env:"BUCKET" envDefault:"advertisements"`
}
