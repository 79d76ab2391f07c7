package bot

import "github.com/bwmarrin/discordgo"

func (b *Bot) registerCommands() error {
	minCount := 1.0
	minMinutes := 1.0
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "new",
			Description: "Open a support ticket",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Ouvrir un ticket de support",
				discordgo.EnglishUS: "Open a support ticket",
				discordgo.SpanishES: "Abrir un ticket de soporte",
			},
		},
		{
			Name:        "close",
			Description: "Close this ticket",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Fermer ce ticket",
				discordgo.EnglishUS: "Close this ticket",
				discordgo.SpanishES: "Cerrar este ticket",
			},
		},
		{
			Name:        "rename",
			Description: "Rename this ticket",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Renommer ce ticket",
				discordgo.EnglishUS: "Rename this ticket",
				discordgo.SpanishES: "Renombrar este ticket",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "new ticket name",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "nouveau nom du ticket",
						discordgo.EnglishUS: "new ticket name",
						discordgo.SpanishES: "nuevo nombre del ticket",
					},
					Required: true,
				},
			},
		},
		{
			Name:        "add",
			Description: "Add members to this ticket",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Ajouter des membres a ce ticket",
				discordgo.EnglishUS: "Add members to this ticket",
				discordgo.SpanishES: "Anadir miembros a este ticket",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "users",
					Description: "mentions, IDs, or names",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "mentions, IDs ou noms",
						discordgo.EnglishUS: "mentions, IDs, or names",
						discordgo.SpanishES: "menciones, IDs o nombres",
					},
					Required: true,
				},
			},
		},
		{
			Name:        "remove",
			Description: "Remove a member from this ticket",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Retirer un membre de ce ticket",
				discordgo.EnglishUS: "Remove a member from this ticket",
				discordgo.SpanishES: "Quitar un miembro de este ticket",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "member to remove",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "membre a retirer",
						discordgo.EnglishUS: "member to remove",
						discordgo.SpanishES: "miembro a quitar",
					},
					Required: true,
				},
			},
		},
		{
			Name:        "ticket-ping",
			Description: "Ping members in this ticket",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Mentionner des membres dans ce ticket",
				discordgo.EnglishUS: "Ping members in this ticket",
				discordgo.SpanishES: "Mencionar miembros en este ticket",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "users",
					Description: "mentions, IDs, or names (owner if omitted)",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "mentions, IDs ou noms (proprietaire par defaut)",
						discordgo.EnglishUS: "mentions, IDs, or names (owner if omitted)",
						discordgo.SpanishES: "menciones, IDs o nombres (dueno por defecto)",
					},
					Required: false,
				},
			},
		},
		{
			Name:        "ticket-setup",
			Description: "Configure the ticket system",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Configurer le systeme de tickets",
				discordgo.EnglishUS: "Configure the ticket system",
				discordgo.SpanishES: "Configurar el sistema de tickets",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "category",
					Description: "category for new tickets",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "categorie des nouveaux tickets",
						discordgo.EnglishUS: "category for new tickets",
						discordgo.SpanishES: "categoria para tickets nuevos",
					},
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
					Required:     true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "transcripts",
					Description: "channel that receives transcripts",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "salon recevant les transcriptions",
						discordgo.EnglishUS: "channel that receives transcripts",
						discordgo.SpanishES: "canal que recibe transcripciones",
					},
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					Required:     false,
				},
			},
		},
		{
			Name:        "ticket-staff",
			Description: "Manage ticket staff roles",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Gerer les roles staff des tickets",
				discordgo.EnglishUS: "Manage ticket staff roles",
				discordgo.SpanishES: "Gestionar roles de staff de tickets",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "action",
					Description: "add, remove, or list",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "add, remove ou list",
						discordgo.EnglishUS: "add, remove, or list",
						discordgo.SpanishES: "add, remove o list",
					},
					Required: true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "add", Value: "add"},
						{Name: "remove", Value: "remove"},
						{Name: "list", Value: "list"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "staff role",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "role staff",
						discordgo.EnglishUS: "staff role",
						discordgo.SpanishES: "rol de staff",
					},
					Required: false,
				},
			},
		},
		{
			Name:        "ticket-transcripts",
			Description: "Set or remove the transcript channel",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Definir ou retirer le salon des transcriptions",
				discordgo.EnglishUS: "Set or remove the transcript channel",
				discordgo.SpanishES: "Definir o quitar el canal de transcripciones",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "action",
					Description: "set or remove",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "set ou remove",
						discordgo.EnglishUS: "set or remove",
						discordgo.SpanishES: "set o remove",
					},
					Required: true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "set", Value: "set"},
						{Name: "remove", Value: "remove"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "channel that receives transcripts",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "salon recevant les transcriptions",
						discordgo.EnglishUS: "channel that receives transcripts",
						discordgo.SpanishES: "canal que recibe transcripciones",
					},
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					Required:     false,
				},
			},
		},
		{
			Name:        "ticket-info",
			Description: "Show the ticket configuration",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Afficher la configuration des tickets",
				discordgo.EnglishUS: "Show the ticket configuration",
				discordgo.SpanishES: "Mostrar la configuracion de tickets",
			},
		},
		{
			Name:        "ticket-panel",
			Description: "Post the ticket creation panel",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Publier le panneau de creation de tickets",
				discordgo.EnglishUS: "Post the ticket creation panel",
				discordgo.SpanishES: "Publicar el panel de creacion de tickets",
			},
		},
		{
			Name:        "ban",
			Description: "Ban a member",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Bannir un membre",
				discordgo.EnglishUS: "Ban a member",
				discordgo.SpanishES: "Banear a un miembro",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "member to ban",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "membre a bannir",
						discordgo.EnglishUS: "member to ban",
						discordgo.SpanishES: "miembro a banear",
					},
					Required: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "ban reason",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "raison du ban",
						discordgo.EnglishUS: "ban reason",
						discordgo.SpanishES: "razon del baneo",
					},
					Required: false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "delete_days",
					Description: "days of messages to delete (0-7)",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "jours de messages a supprimer (0-7)",
						discordgo.EnglishUS: "days of messages to delete (0-7)",
						discordgo.SpanishES: "dias de mensajes a borrar (0-7)",
					},
					Required: false,
				},
			},
		},
		{
			Name:        "timeout",
			Description: "Time out a member",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Exclure temporairement un membre",
				discordgo.EnglishUS: "Time out a member",
				discordgo.SpanishES: "Aislar temporalmente a un miembro",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "member to time out",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "membre a exclure",
						discordgo.EnglishUS: "member to time out",
						discordgo.SpanishES: "miembro a aislar",
					},
					Required: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "minutes",
					Description: "duration in minutes (1-40320)",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "duree en minutes (1-40320)",
						discordgo.EnglishUS: "duration in minutes (1-40320)",
						discordgo.SpanishES: "duracion en minutos (1-40320)",
					},
					Required: true,
					MinValue: &minMinutes,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "timeout reason",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "raison de l'exclusion",
						discordgo.EnglishUS: "timeout reason",
						discordgo.SpanishES: "razon del aislamiento",
					},
					Required: false,
				},
			},
		},
		{
			Name:        "untimeout",
			Description: "Lift a member's timeout",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Lever l'exclusion d'un membre",
				discordgo.EnglishUS: "Lift a member's timeout",
				discordgo.SpanishES: "Levantar el aislamiento de un miembro",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "member to release",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "membre a liberer",
						discordgo.EnglishUS: "member to release",
						discordgo.SpanishES: "miembro a liberar",
					},
					Required: true,
				},
			},
		},
		{
			Name:        "purge",
			Description: "Bulk delete recent messages",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Supprimer en masse des messages recents",
				discordgo.EnglishUS: "Bulk delete recent messages",
				discordgo.SpanishES: "Borrar en masa mensajes recientes",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "messages to delete (1-100)",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "messages a supprimer (1-100)",
						discordgo.EnglishUS: "messages to delete (1-100)",
						discordgo.SpanishES: "mensajes a borrar (1-100)",
					},
					Required: true,
					MinValue: &minCount,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "only this author's messages",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "seulement les messages de cet auteur",
						discordgo.EnglishUS: "only this author's messages",
						discordgo.SpanishES: "solo los mensajes de este autor",
					},
					Required: false,
				},
			},
		},
		{
			Name:        "mod-role",
			Description: "Manage moderator roles",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Gerer les roles de moderation",
				discordgo.EnglishUS: "Manage moderator roles",
				discordgo.SpanishES: "Gestionar roles de moderacion",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "action",
					Description: "add, remove, or list",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "add, remove ou list",
						discordgo.EnglishUS: "add, remove, or list",
						discordgo.SpanishES: "add, remove o list",
					},
					Required: true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "add", Value: "add"},
						{Name: "remove", Value: "remove"},
						{Name: "list", Value: "list"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "moderator role",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "role de moderation",
						discordgo.EnglishUS: "moderator role",
						discordgo.SpanishES: "rol de moderacion",
					},
					Required: false,
				},
			},
		},
		{
			Name:        "verify-setup",
			Description: "Post the verification message",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Publier le message de verification",
				discordgo.EnglishUS: "Post the verification message",
				discordgo.SpanishES: "Publicar el mensaje de verificacion",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "channel for the verification message",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "salon du message de verification",
						discordgo.EnglishUS: "channel for the verification message",
						discordgo.SpanishES: "canal del mensaje de verificacion",
					},
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					Required:     true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "role granted on verification",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "role accorde a la verification",
						discordgo.EnglishUS: "role granted on verification",
						discordgo.SpanishES: "rol otorgado al verificarse",
					},
					Required: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "emoji",
					Description: "reaction emoji",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "emoji de reaction",
						discordgo.EnglishUS: "reaction emoji",
						discordgo.SpanishES: "emoji de reaccion",
					},
					Required: false,
				},
			},
		},
		{
			Name:        "welcome",
			Description: "Configure welcome messages",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Configurer les messages de bienvenue",
				discordgo.EnglishUS: "Configure welcome messages",
				discordgo.SpanishES: "Configurar mensajes de bienvenida",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "action",
					Description: "set, disable, view, or preview",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "set, disable, view ou preview",
						discordgo.EnglishUS: "set, disable, view, or preview",
						discordgo.SpanishES: "set, disable, view o preview",
					},
					Required: true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "set", Value: "set"},
						{Name: "disable", Value: "disable"},
						{Name: "view", Value: "view"},
						{Name: "preview", Value: "preview"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "welcome channel",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "salon de bienvenue",
						discordgo.EnglishUS: "welcome channel",
						discordgo.SpanishES: "canal de bienvenida",
					},
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					Required:     false,
				},
			},
		},
		{
			Name:        "fivem-status",
			Description: "Show current FiveM platform status",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Afficher le statut de la plateforme FiveM",
				discordgo.EnglishUS: "Show current FiveM platform status",
				discordgo.SpanishES: "Mostrar el estado de la plataforma FiveM",
			},
		},
		{
			Name:        "fivem-status-setup",
			Description: "Configure the status monitor",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Configurer le moniteur de statut",
				discordgo.EnglishUS: "Configure the status monitor",
				discordgo.SpanishES: "Configurar el monitor de estado",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "action",
					Description: "set, disable, or view",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "set, disable ou view",
						discordgo.EnglishUS: "set, disable, or view",
						discordgo.SpanishES: "set, disable o view",
					},
					Required: true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "set", Value: "set"},
						{Name: "disable", Value: "disable"},
						{Name: "view", Value: "view"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "channel for the tracked status message",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "salon du message de statut suivi",
						discordgo.EnglishUS: "channel for the tracked status message",
						discordgo.SpanishES: "canal del mensaje de estado",
					},
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					Required:     false,
				},
			},
		},
		{
			Name:        "verify-purchase",
			Description: "Verify a store purchase",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Verifier un achat en boutique",
				discordgo.EnglishUS: "Verify a store purchase",
				discordgo.SpanishES: "Verificar una compra de la tienda",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "transaction",
					Description: "transaction ID (tbx-...)",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "ID de transaction (tbx-...)",
						discordgo.EnglishUS: "transaction ID (tbx-...)",
						discordgo.SpanishES: "ID de transaccion (tbx-...)",
					},
					Required: true,
				},
			},
		},
		{
			Name:        "tebex-setup",
			Description: "Configure purchase verification",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Configurer la verification des achats",
				discordgo.EnglishUS: "Configure purchase verification",
				discordgo.SpanishES: "Configurar la verificacion de compras",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "role granted to verified buyers",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "role accorde aux acheteurs verifies",
						discordgo.EnglishUS: "role granted to verified buyers",
						discordgo.SpanishES: "rol otorgado a compradores verificados",
					},
					Required: false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "log_channel",
					Description: "channel that logs verified purchases",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "salon des achats verifies",
						discordgo.EnglishUS: "channel that logs verified purchases",
						discordgo.SpanishES: "canal que registra compras verificadas",
					},
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					Required:     false,
				},
			},
		},
		{
			Name:        "ping",
			Description: "Show bot latency",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Afficher la latence du bot",
				discordgo.EnglishUS: "Show bot latency",
				discordgo.SpanishES: "Mostrar la latencia del bot",
			},
		},
		{
			Name:        "server-info",
			Description: "Show server information",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Afficher les informations du serveur",
				discordgo.EnglishUS: "Show server information",
				discordgo.SpanishES: "Mostrar informacion del servidor",
			},
		},
		{
			Name:        "server-logo",
			Description: "Show the server icon",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Afficher l'icone du serveur",
				discordgo.EnglishUS: "Show the server icon",
				discordgo.SpanishES: "Mostrar el icono del servidor",
			},
		},
		{
			Name:        "add-role-all",
			Description: "Grant a role to every member",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French:    "Attribuer un role a tous les membres",
				discordgo.EnglishUS: "Grant a role to every member",
				discordgo.SpanishES: "Otorgar un rol a todos los miembros",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "role to grant",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.French:    "role a attribuer",
						discordgo.EnglishUS: "role to grant",
						discordgo.SpanishES: "rol a otorgar",
					},
					Required: true,
				},
			},
		},
	}

	appID := b.session.State.User.ID
	existing, err := b.session.ApplicationCommands(appID, "")
	if err != nil {
		for _, cmd := range commands {
			if _, err := b.session.ApplicationCommandCreate(appID, "", cmd); err != nil {
				return err
			}
		}
		return nil
	}

	existingByName := make(map[string]*discordgo.ApplicationCommand)
	for _, cmd := range existing {
		existingByName[cmd.Name] = cmd
	}

	desired := make(map[string]struct{})
	for _, cmd := range commands {
		desired[cmd.Name] = struct{}{}
		if current, ok := existingByName[cmd.Name]; ok {
			if _, err := b.session.ApplicationCommandEdit(appID, "", current.ID, cmd); err != nil {
				return err
			}
			continue
		}
		if _, err := b.session.ApplicationCommandCreate(appID, "", cmd); err != nil {
			return err
		}
	}

	for _, cmd := range existing {
		if _, ok := desired[cmd.Name]; ok {
			continue
		}
		_ = b.session.ApplicationCommandDelete(appID, "", cmd.ID)
	}

	for _, guild := range b.session.State.Guilds {
		if guild == nil {
			continue
		}
		guildID := guild.ID
		guildCmds, err := b.session.ApplicationCommands(appID, guildID)
		if err != nil {
			continue
		}
		for _, cmd := range guildCmds {
			if _, ok := desired[cmd.Name]; ok {
				continue
			}
			_ = b.session.ApplicationCommandDelete(appID, guildID, cmd.ID)
		}
	}
	return nil
}
