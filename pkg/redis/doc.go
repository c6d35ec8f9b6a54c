// Package redis connects to Redis with retries and exposes a health probe.
// It backs the shared spool registry when several upload servers must agree
// on which temporary files are genuine.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//		registry := spool.NewRedisRegistry(client)
//	}
//
// Errors wrap the go-redis cause with errors.Join, so both the sentinel and
// the cause match errors.Is.
package redis
