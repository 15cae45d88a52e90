package api_test

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/voidshard/logogen/pkg/api"
	"github.com/voidshard/logogen/pkg/api/http/client"
	"github.com/voidshard/logogen/pkg/api/http/server"
	"github.com/voidshard/logogen/pkg/artifact"
	"github.com/voidshard/logogen/pkg/database"
	"github.com/voidshard/logogen/pkg/structs"
)

const (
	// set to a postgres or mongodb (replica set) URL to run
	testDatabaseURLVar = "LOGOGEN_TEST_DB_URL"
)

// TestEndToEnd
//
// - migrates the database
// - runs the trigger & serves the API
// - creates a job over HTTP
// - waits for the trigger to move it to done or failed
// - checks the final fields
func TestEndToEnd(t *testing.T) {
	url := os.Getenv(testDatabaseURLVar)
	if url == "" {
		t.Skipf("%s not set", testDatabaseURLVar)
	}
	log := zerolog.Nop()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	db, err := database.New(&database.Options{URL: url}, log)
	assert.Nil(t, err)
	assert.Nil(t, db.Migrate(ctx))

	art, err := artifact.NewResolver(nil, log)
	assert.Nil(t, err)

	svc, err := api.NewAPI(db, art, api.OptionsServerDefault(), log)
	assert.Nil(t, err)
	defer svc.Close()
	go svc.Run(ctx)

	srv := httptest.NewServer(server.NewServer(":0", false, log).Handler(svc))
	defer srv.Close()

	cl, err := client.New(srv.URL)
	assert.Nil(t, err)

	in, err := cl.CreateJob(ctx, &structs.CreateJobRequest{Prompt: "lighthouse at dusk", Style: structs.StyleAbstract})
	assert.Nil(t, err)
	assert.Equal(t, structs.PROCESSING, in.Status)

	out, err := cl.WaitForJob(ctx, in.ID)
	assert.Nil(t, err)
	assert.True(t, structs.IsFinalStatus(out.Status))
	assert.Equal(t, in.Prompt, out.Prompt)
	if out.Status == structs.DONE {
		assert.Contains(t, artifact.Placeholders(), *out.ImageURL)
		assert.Nil(t, out.ErrorMessage)
	} else {
		assert.Nil(t, out.ImageURL)
		assert.Equal(t, structs.FailureMessage, *out.ErrorMessage)
	}

	_, err = cl.Health(ctx)
	assert.Nil(t, err)
}
