package config

type App struct {
	Env       string `json:"env" yaml:"env"`
	Debug     bool   `json:"debug" yaml:"debug"`
	OrderSalt string `json:"order_salt" yaml:"order_salt"`
}

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
}
