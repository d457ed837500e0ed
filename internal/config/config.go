package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"storerate"`
	DBPath     string `env:"DBPath" envDefault:"datas/storerate.db"`
	DBPort     string `env:"DBPort" envDefault:"3306"`

	// Session cookies carry only an opaque token; rows live in the
	// sessions table and expire after this many hours.
	SessionTTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"168"`
	SessionCookie   string `env:"SESSION_COOKIE" envDefault:"session_cookie_name"`

	// AdminGuard mounts a role gate on /admin. Off by default: admin
	// routes are otherwise served open.
	AdminGuard bool `env:"ADMIN_GUARD" envDefault:"false"`

	// Bootstrap admin account, created at startup when missing.
	AdminName     string `env:"ADMIN_NAME" envDefault:"Store Rating Default Admin"`
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:""`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:""`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"*"`
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.Debugf("%#v\n", Conf)
	return Conf, nil
}
