package fetch

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"service-insights-go/internal/logger"
)

var httpClient = &http.Client{
	Timeout: 12 * time.Second,
}

// Table downloads one remote table with exponential-backoff retry. Server
// errors are retried; client errors are terminal.
func Table(url string) ([]byte, error) {
	log := logger.New().WithField("module", "fetch").WithField("url", url)
	log.Info("downloading table")

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 15 * time.Second

	var body []byte
	operation := func() error {
		resp, err := httpClient.Get(url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error %d: %s", resp.StatusCode, data)
		}
		if resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("download failed: %d", resp.StatusCode))
		}
		body = data
		return nil
	}

	if err := backoff.Retry(operation, bo); err != nil {
		log.WithError(err).Error("download failed")
		return nil, err
	}
	log.WithField("bytes", len(body)).Info("table downloaded")
	return body, nil
}
