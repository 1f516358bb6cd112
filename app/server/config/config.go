package config

type Config struct {
	System struct {
		IsProd                bool   // production mode switch
		Listen                string // listen address
		DBConnectionString    string // Postgres connection string
		RedisConnectionString string // Redis connection string
	}
	Security struct {
		SignatureSecretKey string // JWT signing key; rotating it invalidates existing sessions
	}
}
