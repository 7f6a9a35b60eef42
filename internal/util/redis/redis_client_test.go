/*
Copyright 2026 The Saze AI Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Test for the redis client utilities.

package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gredis "github.com/redis/go-redis/v9"
	"github.com/saze-ai/toolgate/internal/util/redis"
	utls "github.com/saze-ai/toolgate/internal/util/tls"
)

func TestRedisClient(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Redis Client Suite")
}

var (
	redisUrl    string
	redisCaCert string
	minirds     *miniredis.Miniredis = nil
)

func init() {
	redisUrl = os.Getenv("SAZE_REDIS_URL")
	redisCaCert = os.Getenv("SAZE_REDIS_CACERT_PATH")
}

var _ = BeforeSuite(func() {
	if redisUrl == "" {
		minirds = miniredis.RunT(GinkgoT())
		Expect(minirds).ToNot(BeNil())
		redisUrl = "redis://" + minirds.Addr()
	}
})

var _ = Describe("Redis Client", func() {
	var rds *gredis.Client
	var err error

	BeforeEach(func() {
		cfg := &redis.RedisClientConfig{
			Url:         redisUrl,
			ServiceName: "test-service",
		}
		if redisCaCert != "" {
			cfg.EnableTLS = true
			cfg.Certificates = &utls.Certificates{
				CaCertFile: redisCaCert,
			}
		}
		rds, err = redis.NewRedisClient(context.Background(), cfg)
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		if rds != nil {
			rds.Close()
		}
	})

	It("should create a redis client", func() {
		Expect(rds).NotTo(BeNil())
	})

	It("should set, get and delete a key", func() {
		_, err := rds.Set(context.Background(), "k1", "v1", 0).Result()
		Expect(err).To(BeNil())
		val, err := rds.Get(context.Background(), "k1").Result()
		Expect(err).To(BeNil())
		Expect(val).To(Equal("v1"))
		_, err = rds.Del(context.Background(), "k1").Result()
		Expect(err).To(BeNil())
	})

	It("should fail the ping when TLS is enabled against a plaintext server", func() {
		if minirds == nil {
			Skip("external redis server, TLS support unknown")
		}
		cfgTls := &redis.RedisClientConfig{
			Url:         redisUrl,
			ServiceName: "test-service",
			EnableTLS:   true,
			Insecure:    true,
		}
		rdsTls, errTls := redis.NewRedisClient(context.Background(), cfgTls)
		Expect(errTls).ToNot(BeNil())
		Expect(rdsTls).To(BeNil())
	})

	It("should fail to create a redis client with unreadable certificate files", func() {
		cfgBad := &redis.RedisClientConfig{
			Url:         redisUrl,
			ServiceName: "test-service",
			EnableTLS:   true,
			Certificates: &utls.Certificates{
				Dir:        "/nonexistent",
				CertFile:   "client.crt",
				KeyFile:    "client.key",
				CaCertFile: "ca.crt",
			},
		}
		rdsBad, errBad := redis.NewRedisClient(context.Background(), cfgBad)
		Expect(errBad).ToNot(BeNil())
		Expect(rdsBad).To(BeNil())
	})

	It("should fail to create a redis client with invalid URL", func() {
		cfgInv := &redis.RedisClientConfig{
			Url:         "redis://invalid-url",
			ServiceName: "test-service",
		}
		rdsInv, errInv := redis.NewRedisClient(context.Background(), cfgInv)
		Expect(errInv).ToNot(BeNil())
		Expect(rdsInv).To(BeNil())
	})
})
