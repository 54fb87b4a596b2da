package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Listen   string   `koanf:"listen"`
	Auth     Auth     `koanf:"auth"`
	Database Database `koanf:"db"`
	Sync     Sync     `koanf:"sync"`
}

type Auth struct {
	Google      Google `koanf:"google"`
	TokenSecret string `koanf:"tokensecret"`
	TokenTTL    int    `koanf:"tokenttl"` // hours
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Sync struct {
	// SettleDelayMs is how long the store waits after sign-in before
	// resolving the default space, so personal-space provisioning that
	// runs during the OAuth callback can finish first.
	SettleDelayMs  int    `koanf:"settledelayms"`
	ReconcileEvery string `koanf:"reconcileevery"` // cron spec
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host:   "http://localhost:3000",
		Listen: ":8282",
		Auth: Auth{
			TokenTTL: 72,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "spacecal",
			Pass:   "",
			Name:   "spacecal",
			Schema: "spacecal",
		},
		Sync: Sync{
			SettleDelayMs:  1000,
			ReconcileEvery: "@every 5m",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "SPACECAL_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "SPACECAL_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
