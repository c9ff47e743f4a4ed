package schema

// Options carries the identifying information and connection string a schema
// needs on first use. After the registry has cached a schema instance, nil
// options are sufficient for retrieval.
type Options struct {
	// Server is the logical server name stamped onto trace records.
	Server string `env:"IDENTITY_SERVER" envDefault:"localhost"`

	// Connection is the connection string used when the underlying
	// connection has not been established yet.
	Connection string `env:"MONGODB_URL"`

	// Database is the logical database identifier.
	Database string `env:"MONGODB_DATABASE" envDefault:"amethyst"`
}
