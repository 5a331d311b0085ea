// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package emulator fornece um servidor HTTP que imita o endpoint OAuth do
// PISTE e as rotas da API Légifrance, configurável via JSON, para
// desenvolvimento local e testes de integração sem credenciais reais.
//
// Visão Geral:
// O servidor emite tokens pelo fluxo client_credentials e exige o bearer
// nas rotas da API. As rotas respondem com corpos estáticos ou procuram no
// dataset configurado pelos parâmetros de path, query string ou corpo JSON
// (ex.: o "id" enviado para consult/getArticle).
//
// Funcionalidades Principais:
//   - Token: POST /oauth/token com client_id e client_secret no formulário;
//     FailFirst simula as primeiras N chamadas com falha.
//   - Bearer: rotas sob BasePath (padrão /api) recusam tokens não emitidos.
//   - Ping: GET /api/consult/ping devolve "pong".
//   - Contadores de chamadas ao token e por rota, para asserções em testes.
//
// Exemplo de Configuração (emulator.json):
//
//	[
//	  {
//	    "port": 8080,
//	    "client_id": "local",
//	    "client_secret": "local",
//	    "routes": [
//	      {
//	        "path": "/consult/getArticle",
//	        "method": "POST",
//	        "body_params": [{ "name": "id", "maps_to": "article.id" }],
//	        "data": [
//	          { "article": { "id": "LEGIARTI000006419280", "num": "1" } }
//	        ],
//	        "response_on_no_match": { "status": 404, "body": { "error": "not found" } }
//	      }
//	    ]
//	  }
//	]
//
// Exemplo de Inicialização Programática (Go):
//
//	var cfg config.Config
//	if err := cfg.LoadFromFile("emulator.json"); err != nil {
//		log.Fatal(err)
//	}
//	srv := emulator.New(cfg[0])
//	log.Fatal(srv.Start())
package emulator
