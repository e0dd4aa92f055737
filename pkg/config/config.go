package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	HTTP     HTTPConfig
	Products ProductsConfig
	Log      LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuración de PostgreSQL y del pool de conexiones.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int // tope de conexiones concurrentes del pool
	MinConns int // conexiones ociosas precalentadas
}

// Validate verifica que las credenciales y los límites del pool estén completos.
// Un fallo aquí es fatal en el arranque: el servicio no puede operar sin la base de datos.
func (c DBConfig) Validate() error {
	var faltantes []string
	if c.Host == "" {
		faltantes = append(faltantes, "DB_HOST")
	}
	if c.User == "" {
		faltantes = append(faltantes, "DB_USER")
	}
	if c.Password == "" {
		faltantes = append(faltantes, "DB_PASSWORD")
	}
	if c.DBName == "" {
		faltantes = append(faltantes, "DB_NAME")
	}
	if len(faltantes) > 0 {
		return fmt.Errorf("variables de entorno de DB faltantes: %s", strings.Join(faltantes, ", "))
	}
	if c.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS debe ser mayor que cero (valor: %d)", c.MaxConns)
	}
	if c.MinConns < 0 || c.MinConns > c.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS debe estar entre 0 y DB_MAX_CONNS (valor: %d)", c.MinConns)
	}
	return nil
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ProductsConfig configuración del servicio externo de productos.
// BaseURL o APIKey vacíos no son fatales en el arranque: el cliente responde
// SERVICE_UNAVAILABLE en cada llamada hasta que se configuren.
type ProductsConfig struct {
	BaseURL string
	APIKey  string
}

// LogConfig configuración del log de auditoría (append-only).
type LogConfig struct {
	Dir string // directorio de los archivos YYYY-MM-DD.log
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, PRODUCTS_SERVICE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "inventory-service"),
		},
		DB: DBConfig{
			Host:     getString(v, "DB_HOST", "localhost"),
			Port:     getInt(v, "DB_PORT", 5432),
			User:     getString(v, "DB_USER", ""),
			Password: getString(v, "DB_PASSWORD", ""),
			DBName:   getString(v, "DB_NAME", ""),
			SSLMode:  getString(v, "DB_SSLMODE", "disable"),
			MaxConns: getInt(v, "DB_MAX_CONNS", 10),
			MinConns: getInt(v, "DB_MIN_CONNS", 2),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8002),
		},
		Products: ProductsConfig{
			BaseURL: getString(v, "PRODUCTS_SERVICE_URL", ""),
			APIKey:  getString(v, "PRODUCTS_API_KEY", ""),
		},
		Log: LogConfig{
			Dir: getString(v, "LOG_DIR", "logs"),
		},
	}

	if err := cfg.DB.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
