package main

import (
	"github.com/voidshard/logogen/internal/utils"
	"github.com/voidshard/logogen/pkg/api"
	"github.com/voidshard/logogen/pkg/api/http/server"
)

const (
	docApi = `Run the API server`
)

type optsAPI struct {
	optsGeneral
	optsDatabase

	Addr string `long:"addr" env:"ADDR" description:"Address to bind to" default:"localhost:8100"`
}

func (c *optsAPI) Execute(args []string) error {
	// This serves the job API to clients over HTTP. It's configured with OptionsClientDefault so
	// it does not listen for changes; creating a job here relies on a trigger running elsewhere.
	log := utils.NewLogger(c.Debug)

	// the API never resolves artifacts, it only needs the store
	svc, err := api.New(c.optsDatabase.options(), nil, api.OptionsClientDefault(), log)
	if err != nil {
		return err
	}
	defer svc.Close()

	s := server.NewServer(c.Addr, c.Debug, log.With().Str("component", "http").Logger())
	return s.ServeForever(svc)
}
