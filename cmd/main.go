package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dataset_assistant/internal/assistant"
	"dataset_assistant/internal/clients/prefstore"
	"dataset_assistant/internal/config"
	"dataset_assistant/internal/logging"
	"dataset_assistant/internal/models"
	"dataset_assistant/internal/routes"
	"dataset_assistant/internal/services"
)

var configFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dataset_assistant",
		Short:         "数据集市场助手",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "配置文件路径")

	root.AddCommand(newServeCmd(), newChatCmd())
	return root
}

// loadConfig 加载配置，文件不存在时使用默认配置，fromFile 为 false
func loadConfig() (cfg *config.Config, fromFile bool, err error) {
	cfg, err = config.Load(configFile)
	if err == nil {
		return cfg, true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), false, nil
	}
	return nil, false, err
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动HTTP/WebSocket服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fromFile, err := loadConfig()
			if err != nil {
				return fmt.Errorf("加载配置失败: %w", err)
			}
			logger, level, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := prefstore.New(cfg.Preference)
			if err != nil {
				return fmt.Errorf("创建偏好存储失败: %w", err)
			}
			defer store.Close()

			dialogSvc := services.NewDialogService(cfg, store, nil, logger)
			srv := &http.Server{
				Addr:    cfg.Server.Addr(),
				Handler: routes.NewRouter(cfg, dialogSvc, logger),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("助手服务启动", zap.String("addr", srv.Addr), zap.String("preference_backend", cfg.Preference.Backend))
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("服务运行失败: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				logger.Info("正在关闭服务...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			if fromFile {
				if w := newConfigWatcher(logger, level); w != nil {
					g.Go(func() error {
						w.Run(gctx)
						return nil
					})
				}
			}
			return g.Wait()
		},
	}
}

// newConfigWatcher 配置文件变化时热更新日志级别，其余配置需重启生效
func newConfigWatcher(logger *zap.Logger, level zap.AtomicLevel) *config.Watcher {
	w, err := config.NewWatcher(configFile,
		func(cfg *config.Config) {
			if err := logging.SetLevel(level, cfg.Log.Level); err != nil {
				logger.Warn("更新日志级别失败", zap.Error(err))
				return
			}
			logger.Info("配置已重新加载", zap.String("log_level", cfg.Log.Level))
		},
		func(err error) {
			logger.Warn("重新加载配置失败", zap.Error(err))
		},
	)
	if err != nil {
		logger.Warn("无法监听配置文件", zap.Error(err))
		return nil
	}
	return w
}

func newChatCmd() *cobra.Command {
	var (
		email     string
		path      string
		thinking  bool
		sessionID string
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "在终端与助手对话",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return fmt.Errorf("加载配置失败: %w", err)
			}
			store, err := prefstore.New(cfg.Preference)
			if err != nil {
				return fmt.Errorf("创建偏好存储失败: %w", err)
			}
			defer store.Close()

			pacer := services.Instant()
			if thinking {
				pacer = nil
			}
			dialogSvc := services.NewDialogService(cfg, store, pacer, zap.NewNop())

			turn := models.Turn{
				SessionID: sessionID,
				User:      models.UserContext{LocationPath: path},
			}
			if email != "" {
				turn.UserKey = strings.ToLower(email)
				turn.User.IsAuthenticated = true
				turn.User.DisplayNameFragment = assistant.NameFragmentFromEmail(email)
			}
			return handleCommands(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), dialogSvc, turn)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "以该邮箱登录")
	cmd.Flags().StringVar(&path, "path", "/", "当前页面路由")
	cmd.Flags().BoolVar(&thinking, "thinking", false, "模拟回复前的思考延迟")
	cmd.Flags().StringVar(&sessionID, "session", "cli", "会话ID")
	return cmd
}

// handleCommands 处理用户输入，/开头的是命令，其余作为消息发送给助手
func handleCommands(ctx context.Context, in io.Reader, out io.Writer, dialogSvc *services.DialogService, turn models.Turn) error {
	reader := bufio.NewReader(in)
	printHelp(out)

	for {
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("读取输入失败: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "/quit", "/exit":
			return nil
		case "/help":
			printHelp(out)
		case "/history":
			for _, msg := range dialogSvc.GetHistory(turn.SessionID) {
				fmt.Fprintf(out, "[%s] %s\n", msg.Role, msg.Text)
			}
		case "/clear":
			dialogSvc.ClearHistory(turn.SessionID)
			fmt.Fprintln(out, "历史已清除")
		case "/path":
			if len(parts) != 2 {
				fmt.Fprintln(out, "用法: /path <route>")
				continue
			}
			turn.User.LocationPath = parts[1]
		default:
			turn.Text = line
			reply, err := dialogSvc.ProcessMessage(ctx, turn)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, reply.Text)
		}
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "可用命令:")
	fmt.Fprintln(out, "  /path <route> - 切换当前页面")
	fmt.Fprintln(out, "  /history - 查看对话历史")
	fmt.Fprintln(out, "  /clear - 清除对话历史")
	fmt.Fprintln(out, "  /quit - 退出程序")
}
