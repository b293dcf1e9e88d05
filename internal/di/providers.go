package di

import (
	"shoutd/internal/providers"
	"shoutd/internal/statistic"
	"shoutd/internal/statistic/interfaces"
	"shoutd/internal/structures"
)

func provideLogger(conf *structures.Config) (providers.Logger, func(), error) {
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Close, nil
}

func provideCompressor() (interfaces.CompressorInterface, func(), error) {
	compressor, err := statistic.NewSnapshotCompressor()
	if err != nil {
		return nil, nil, err
	}
	return compressor, compressor.Close, nil
}

func provideJournal(conf *structures.Config, metrics providers.MetricsProviderInterface, logger providers.Logger) (*statistic.RotatingLog, func(), error) {
	journal, err := statistic.NewRotatingLogFromConfig(conf, metrics, logger)
	if err != nil {
		return nil, nil, err
	}
	return journal, func() {
		if err := journal.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error closing shoutout log: %s", err)
		}
	}, nil
}
