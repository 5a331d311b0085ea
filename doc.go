// Package legifrance reúne um cliente Go para a API REST da Légifrance
// (PISTE) e os pipelines que transformam buscas em documentos jurídicos
// prontos para consumo.
//
// Visão Geral:
// O módulo é organizado em camadas pequenas e substituíveis:
// 1. Autenticação (pkg/auth): ciclo de vida do token OAuth2 Client Credentials,
// com até 3 tentativas e espera fixa de 5s entre elas.
// 2. Executor (pkg/client): Post, Get e Ping sobre um pool de conexões com
// timeout de conexão de 3s e de leitura de 27s, cache opcional e métricas.
// 3. Pipeline (pipeline): envelopes marcados por estágio percorrem as etapas
// CallApi, ExtractSearchResult, IdentifierExtraction e Formatters. Um erro
// interrompe a execução e é devolvido como envelope de estágio "error".
// 4. Busca (pkg/search): montagem das buscas em códigos e no fundo LODA e das
// consultas de artigo, texto e seção.
//
// Sub-Pacotes de Apoio:
//
//   - pkg/models: descritores de requisição validados (search, getArticle,
//     legiPart, jorf...) e os enumerados da API.
//   - pkg/config e envloader: configuração por YAML e variáveis de ambiente,
//     com placeholders ${ssm./caminho} e ${secret.id#campo} resolvidos na AWS.
//   - pkg/cache: cache de respostas em memória ou Redis.
//   - pkg/rules: filtros CEL sobre os registros extraídos.
//   - tools/emulator: servidor local que imita o PISTE para testes.
//
// Exemplo de Início Rápido:
//
//	package main
//
//	import (
//		"context"
//		"encoding/json"
//		"log"
//		"os"
//
//		"github.com/raywall/legifrance-toolkit/pkg/client"
//		"github.com/raywall/legifrance-toolkit/pkg/config"
//		"github.com/raywall/legifrance-toolkit/pkg/search"
//	)
//
//	func main() {
//		// LEGIFRANCE_CLIENT_ID e LEGIFRANCE_CLIENT_SECRET vêm do ambiente
//		cfg, err := config.Load("")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		api, err := client.New(cfg.API)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer api.Close()
//
//		svc := search.New(api)
//		out := svc.Code(context.Background(), search.CodeQuery{Name: "CCIV", Search: "7", Format: true})
//		if err := out.Err(); err != nil {
//			log.Fatal(err)
//		}
//		json.NewEncoder(os.Stdout).Encode(out.Payload)
//	}
package legifrance
