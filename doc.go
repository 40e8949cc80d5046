// Project Structure Overview
/*
boardbase/
├── cmd/
│   └── importer/
│       └── main.go
├── internal/
│   ├── config/
│   │   ├── config.go
│   │   └── database.go
│   ├── schema/
│   │   └── schema.go
│   ├── normalize/
│   │   ├── normalize.go
│   │   └── raw.go
│   ├── vocab/
│   │   └── vocab.go
│   ├── models/
│   │   ├── common.go
│   │   ├── brand.go
│   │   ├── taxonomy.go
│   │   ├── board.go
│   │   └── size.go
│   ├── services/
│   │   ├── alias_cache.go
│   │   └── import_service.go
│   ├── database/
│   │   └── connection.go
│   ├── utils/
│   │   └── validator.go
│   └── tests/
│       └── import_flow_test.go
├── go.mod
└── README.md
*/

// Package boardbase ingests per-brand snowboard scrape output into a
// canonical catalog of board models and size variants.
package boardbase
