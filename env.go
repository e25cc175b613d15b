package main

import (
	"fmt"
	"os"
	"strconv"
)

// Config collects the environment-driven connection and path settings
// shared by both drivers.
type Config struct {
	MongoHost  string
	MongoPort  int
	MongoDb    string
	Attach     string
	DuckDbBin  string
	Queries    string
	ResultsDir string
	Pipelines  string
}

func StringEnv(key string, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func IntEnv(key string, def int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func LoadConfig() Config {
	host := StringEnv("MONGO_HOST", "localhost")
	port := IntEnv("MONGO_PORT", 27017)
	return Config{
		MongoHost:  host,
		MongoPort:  port,
		MongoDb:    StringEnv("MONGO_DB", "tpch"),
		Attach:     StringEnv("MONGO_ATTACH", fmt.Sprintf("mongodb://%v:%v", host, port)),
		DuckDbBin:  StringEnv("DUCKDB_BIN", "duckdb"),
		Queries:    StringEnv("MONGOBENCH_QUERIES", "benchmarks/queries.sql"),
		ResultsDir: StringEnv("MONGOBENCH_RESULTS", "benchmarks/results"),
		Pipelines:  StringEnv("MONGO_PIPELINES", "benchmarks/run-mongo-pipeline.py"),
	}
}
