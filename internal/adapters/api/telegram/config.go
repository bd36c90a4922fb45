package telegram

type Config struct {
	Token       string `env:"TELEGRAM_TOKEN"`
	PollTimeout int    `env:"POLL_TIMEOUT" envDefault:"30"`
}
