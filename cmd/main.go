package main

import (
	"github.com/workhub/workplace-backend/internal/app"
	"github.com/workhub/workplace-backend/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
