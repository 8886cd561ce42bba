package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_BOT_TOKEN" env-default:""`
		BotName string `yaml:"bot_name" env-default:"FiberTrackBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Sheets struct {
		SpreadsheetID   string `yaml:"spreadsheet_id" env:"GOOGLE_SHEET_ID" env-default:""`
		CredentialsFile string `yaml:"credentials_file" env:"GOOGLE_CREDENTIALS_FILE" env-default:""`
		JobsSheet       string `yaml:"jobs_sheet" env-default:"Φύλλο1"`
	} `yaml:"sheets"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:""`
		Password string `yaml:"password" env-default:""`
		Database string `yaml:"database" env-default:"fibertrack"`
	} `yaml:"mongo"`
	// FormState selects where in-progress conversations persist:
	// "sheet" keeps them in the row store next to the domain data,
	// "mongo" uses the form_states collection.
	FormState struct {
		Backend string `yaml:"backend" env-default:"sheet"`
	} `yaml:"form_state"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9200"`
		ApiKey string `yaml:"key" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
