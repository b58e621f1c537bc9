// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai defines the embedding provider abstraction used by the
// ingestion pipeline.
//
// The Embedder interface turns chunk text into fixed-dimension vectors.
// The concrete implementation in ai/openai talks to OpenAI-compatible APIs;
// ai/mock provides a deterministic test double. Configuration uses
// functional options:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("https://api.openai.com/v1"),
//	    ai.WithModel("text-embedding-3-small"),
//	)
//	embedder, err := openai.NewEmbedder(cfg)
package ai
